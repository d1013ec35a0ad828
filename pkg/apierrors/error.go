package apierrors

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"github.com/barscka/backend-pomodoro-task/pkg/translator"
)

// JsonErr is the JSON error envelope returned by the API.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err carries the status code and the localized message.
type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{code, GetTransErrorMsg(msgKey, lang)}}
}

// CreateErrorData generates a JsonErr whose message template is filled with
// the given data (e.g. the quota limit and category name).
func CreateErrorData(code int, msgKey string, lang string, data map[string]interface{}) JsonErr {
	return JsonErr{ErrDetails: Err{code, GetTransErrorMsgData(msgKey, lang, data)}}
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	return GetTransErrorMsgData(msgKey, lang, nil)
}

// GetTransErrorMsgData retrieves the translated error message, expanding the
// template with data when given. Falls back to the key when no translation
// exists.
func GetTransErrorMsgData(msgKey string, lang string, data map[string]interface{}) string {
	l := i18n.NewLocalizer(translator.Translator, lang, "en")
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    msgKey,
		TemplateData: data,
	})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
