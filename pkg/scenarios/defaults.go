package scenarios

import (
	"net/http"

	"github.com/Adda-Baaj/login-apitest/pkg/loginmock"
)

// Defaults returns the three login cases used when no file is configured.
func Defaults() []Scenario {
	return []Scenario{
		{
			ID:       "login_success",
			Name:     "正常登录",
			Endpoint: loginmock.LoginPath,
			Payload:  map[string]any{"username": "test_user", "password": "123456"},
			Expect: Expect{
				Status:       http.StatusOK,
				JSONNonEmpty: []string{"token"},
				JSONEquals:   map[string]string{"token": loginmock.MockToken},
			},
		},
		{
			ID:       "login_password_error",
			Name:     "密码错误",
			Endpoint: loginmock.LoginPath,
			Payload:  map[string]any{"username": "test_user", "password": "wrong_password"},
			Expect: Expect{
				Status:       http.StatusUnauthorized,
				BodyContains: []string{loginmock.MsgPasswordError},
			},
		},
		{
			ID:       "login_username_empty",
			Name:     "用户名为空",
			Endpoint: loginmock.LoginPath,
			Payload:  map[string]any{"username": "", "password": "123456"},
			Expect: Expect{
				Status:       http.StatusBadRequest,
				BodyContains: []string{loginmock.MsgUsernameRequired},
			},
		},
	}
}
