package validator

import "testing"

// TestNormalizeISBN 测试ISBN规整
func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"13位纯数字", "9780441013593", "9780441013593"},
		{"带连字符的13位", "978-0-441-01359-3", "9780441013593"},
		{"带空格的10位", "0 441 01359 7", "0441013597"},
		{"校验位X", "043942089X", "043942089X"},
		{"小写x转大写", "043942089x", "043942089X"},
		{"长度不是10或13", "12345", ""},
		{"去除分隔符后过长", "97804410135931234", ""},
		{"空字符串", "", ""},
		{"纯字母", "abcdefghij", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeISBN(tt.in); got != tt.want {
				t.Errorf("NormalizeISBN(%q) = %q, 期望%q", tt.in, got, tt.want)
			}
		})
	}
}
