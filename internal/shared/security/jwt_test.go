package security

import "testing"

func TestAward_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award("save_1"); err == nil {
		t.Fatalf("期望 JWT_SECRET 为空时 Award 返回错误")
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award("save_1700000000000_1234")
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if token == "" {
		t.Fatalf("期望 token 非空")
	}

	_, claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims == nil || claims.SaveId != "save_1700000000000_1234" {
		t.Fatalf("期望 claims.SaveId 与签发一致, got=%v", claims)
	}
}

func TestParseToken_篡改令牌应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award("save_x")
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if _, _, err := ParseToken(token + "x"); err == nil {
		t.Fatalf("期望篡改后的 token 解析失败")
	}
}
