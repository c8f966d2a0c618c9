package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// 基于 RFC 6238 的 TOTP 实现, 兼容 Google Authenticator
const (
	// Period 时间步长, 秒
	Period = 30
	// Digits 验证码位数
	Digits = 6
	// SecretSize 密钥字节数
	SecretSize = 20
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSecret 生成一个随机密钥, base32 编码
func GenerateSecret() (string, error) {
	buf := make([]byte, SecretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return b32.EncodeToString(buf), nil
}

// GenerateCode 计算指定时间的验证码
func GenerateCode(secret string, t time.Time) (string, error) {
	key, err := b32.DecodeString(strings.ToUpper(strings.TrimSpace(secret)))
	if err != nil {
		return "", fmt.Errorf("invalid totp secret: %w", err)
	}

	counter := uint64(t.Unix()) / Period
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// 动态截断, RFC 4226 5.4
	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for i := 0; i < Digits; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", Digits, value%mod), nil
}

// Validate 校验验证码, 允许前后各一个时间窗的偏移
func Validate(secret string, code string, t time.Time) bool {
	code = strings.TrimSpace(code)
	if len(code) != Digits {
		return false
	}
	for _, skew := range []time.Duration{0, -Period * time.Second, Period * time.Second} {
		expected, err := GenerateCode(secret, t.Add(skew))
		if err != nil {
			return false
		}
		if hmac.Equal([]byte(expected), []byte(code)) {
			return true
		}
	}
	return false
}

// ProvisioningURI 生成 otpauth 链接, 用于客户端扫码绑定
func ProvisioningURI(issuer string, account string, secret string) string {
	label := url.PathEscape(issuer) + ":" + url.PathEscape(account)
	q := url.Values{}
	q.Set("secret", secret)
	q.Set("issuer", issuer)
	q.Set("period", fmt.Sprintf("%d", Period))
	q.Set("digits", fmt.Sprintf("%d", Digits))
	return "otpauth://totp/" + label + "?" + q.Encode()
}
