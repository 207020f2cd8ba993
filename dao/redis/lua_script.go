package redis

// 释放锁的 lua 脚本，只有持有者才能删除 key
const LuaUnlock = `
local keyLock = KEYS[1] -- dailyfeed:mirror:lock:
local token = ARGV[1]

if redis.call("GET", keyLock) == token then
    return redis.call("DEL", keyLock)
end
return 0
`
