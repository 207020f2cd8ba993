package utils

import (
	dailyfeed "dailyfeed/errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// 令牌由认证服务签发，这里只负责校验并取出 member_id
type MemberClaims struct {
	MemberID int64  `json:"member_id"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var jwtKey []byte

func InitToken() {
	SetJwtKey([]byte(viper.GetString("server.jwt_key")))
}

func SetJwtKey(key []byte) {
	jwtKey = key
}

// GenToken 签发 access token，正式环境由认证服务完成，这里用于测试与调试
func GenToken(memberID int64, name string, ttl time.Duration) (string, error) {
	claims := &MemberClaims{
		MemberID: memberID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			Issuer:    "dailyfeed",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ParseToken(tokenStr string) (*MemberClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &MemberClaims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dailyfeed.ErrExpiredToken
		}
		return nil, errors.Wrap(dailyfeed.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*MemberClaims)
	if !ok || !token.Valid {
		return nil, dailyfeed.ErrInvalidToken
	}

	return claims, nil
}
