package app

import (
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    24 * time.Hour,
		Issuer:    "user-issuer",
	}
	tm := NewTokenManager(cfg)

	uid := int64(1001)
	nickname := "testuser"
	ip := "127.0.0.1"

	// 1. 测试生成和解析
	token, err := tm.Generate(uid, nickname, ip)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsedUser, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// 验证字段
	if parsedUser.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, parsedUser.UID)
	}
	if parsedUser.Nickname != nickname {
		t.Errorf("Expected Nickname %s, got %s", nickname, parsedUser.Nickname)
	}
	if parsedUser.IP != ip {
		t.Errorf("Expected IP %s, got %s", ip, parsedUser.IP)
	}
	if parsedUser.Issuer != cfg.Issuer {
		t.Errorf("Expected Issuer %s, got %s", cfg.Issuer, parsedUser.Issuer)
	}

	// 2. 测试过期
	shortExpiryCfg := cfg
	shortExpiryCfg.Expiry = -1 * time.Second
	tmExpired := NewTokenManager(shortExpiryCfg)

	expiredToken, err := tmExpired.Generate(uid, nickname, ip)
	if err != nil {
		t.Fatalf("Generate (expired) failed: %v", err)
	}

	_, err = tm.Parse(expiredToken)
	if err == nil {
		t.Error("Expected error for expired token, but got nil")
	}

	// 3. 测试错误的密钥
	wrongKeyCfg := cfg
	wrongKeyCfg.SecretKey = "wrong-user-secret"
	tmWrongKey := NewTokenManager(wrongKeyCfg)

	wrongToken, _ := tmWrongKey.Generate(uid, nickname, ip)
	_, err = tm.Parse(wrongToken)
	if err == nil {
		t.Error("Expected error for token generated with different secret key, but got nil")
	}

	// 4. 测试篡改后的 Token
	tamperedToken := token + "xyz"
	_, err = tm.Parse(tamperedToken)
	if err == nil {
		t.Error("Expected error for tampered user token, but got nil")
	}
}

func TestTokenManager_ResetGenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey:     "user-secret",
		ResetTokenKey: "reset-secret",
		ResetExpiry:   1 * time.Hour,
		Issuer:        "test-issuer",
	}
	tm := NewTokenManager(cfg)

	uid := int64(1001)
	email := "user@example.com"

	// 1. 测试生成和解析
	token, err := tm.ResetGenerate(uid, email)
	if err != nil {
		t.Fatalf("ResetGenerate failed: %v", err)
	}

	parsedClaims, err := tm.ResetParse(token)
	if err != nil {
		t.Fatalf("ResetParse failed: %v", err)
	}

	if parsedClaims.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, parsedClaims.UID)
	}
	if parsedClaims.Email != email {
		t.Errorf("Expected Email %s, got %s", email, parsedClaims.Email)
	}

	// 验证 ExpiresAt (由于只存了秒级 Unix 戳，允许 1 秒内的误差)
	now := time.Now()
	expectedExp := now.Add(cfg.ResetExpiry)
	if parsedClaims.ExpiresAt.Unix() < expectedExp.Unix()-1 || parsedClaims.ExpiresAt.Unix() > expectedExp.Unix()+1 {
		t.Errorf("Expected ExpiresAt around %v, got %v", expectedExp, parsedClaims.ExpiresAt)
	}

	// 2. 重置 Token 不能当作用户 Token 使用
	if _, err = tm.Parse(token); err == nil {
		t.Error("Expected error when parsing reset token as user token, but got nil")
	}

	// 3. 测试错误的密钥
	wrongKeyCfg := cfg
	wrongKeyCfg.ResetTokenKey = "wrong-secret"
	tmWrongKey := NewTokenManager(wrongKeyCfg)

	wrongToken, _ := tmWrongKey.ResetGenerate(uid, email)
	_, err = tm.ResetParse(wrongToken)
	if err == nil {
		t.Error("Expected error when parsing token with wrong secret key, but got nil")
	}

	// 4. 测试篡改后的 Token
	tamperedToken := token + "tampered"
	_, err = tm.ResetParse(tamperedToken)
	if err == nil {
		t.Error("Expected error for tampered token, but got nil")
	}
}
