package Auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/LJCaballero/Diario/Config"
)

type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken 生成JWT令牌，载荷只携带 {id, email}
func GenerateToken(UserID uint, email string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(Config.Cfg.TokenExpiry) * time.Minute)
	claims := &Claims{
		UserID: UserID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatUint(uint64(UserID), 10),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(Config.Cfg.SecretKey))
}

// ValidateToken 验证JWT令牌
func ValidateToken(tokenString string) (*Claims, error) {

	if Config.Cfg.SecretKey == "" {
		return nil, errors.New("配置未初始化")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(Config.Cfg.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}
