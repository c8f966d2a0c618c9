package totp

import (
	"encoding/base32"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// RFC 6238 附录 B 的 SHA-1 测试向量, 截断为 6 位
func TestGenerateCode_RFCVectors(t *testing.T) {
	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte("12345678901234567890"))

	cases := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
	}

	for _, c := range cases {
		got, err := GenerateCode(secret, time.Unix(c.unix, 0))
		assert.NoError(t, err)
		assert.Equal(t, c.want, got, "unix=%d", c.unix)
	}
}

func TestValidate(t *testing.T) {
	secret, err := GenerateSecret()
	assert.NoError(t, err)

	now := time.Unix(1700000000, 0)
	code, err := GenerateCode(secret, now)
	assert.NoError(t, err)

	assert.True(t, Validate(secret, code, now))
	// 前后一个时间窗内仍有效
	assert.True(t, Validate(secret, code, now.Add(-Period*time.Second)))
	assert.True(t, Validate(secret, code, now.Add(Period*time.Second)))
	// 两个时间窗之外拒绝
	assert.False(t, Validate(secret, code, now.Add(3*Period*time.Second)))
	assert.False(t, Validate(secret, "000000", now))
	assert.False(t, Validate(secret, "", now))
}

func TestProvisioningURI(t *testing.T) {
	uri := ProvisioningURI("Daylog", "alice@example.com", "SECRET")
	assert.Contains(t, uri, "otpauth://totp/Daylog:alice%40example.com")
	assert.Contains(t, uri, "secret=SECRET")
	assert.Contains(t, uri, "issuer=Daylog")
}
