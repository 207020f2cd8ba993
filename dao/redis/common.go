package redis

// keys
// 规范：
// Key + KeyName + Type + (PF)前缀
const (
	KeyLockStringPF = "dailyfeed:lock:" // parma: 资源名（如 post:123），val: 持有者 token
)
