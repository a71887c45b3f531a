// Package i18n 提供国际化支持
// 负责管理应用程序的语言包和翻译功能
package i18n

import (
	"sync"

	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"

	"github.com/notedrop/notedrop/internal/logger"
)

// 支持的语言
const (
	LangZhCN = "zh-CN"
	LangEnUS = "en-US"
)

var (
	instance *I18n
	once     sync.Once

	// 语言包存储
	translations = map[string]map[string]string{
		LangZhCN: {
			"success":               "成功",
			"internal_server_error": "服务器内部错误",
			"invalid_params":        "参数错误",
			"unauthorized":          "未授权",
			"forbidden":             "禁止访问",
			"not_found":             "资源未找到",

			"auth_token_missing":     "未提供认证令牌",
			"auth_token_invalid":     "认证令牌无效",
			"auth_token_expired":     "认证令牌已过期",
			"auth_claims_incomplete": "令牌缺少必要的身份信息",
			"auth_refresh_invalid":   "刷新令牌无效",
			"auth_login_disabled":    "登录接口未启用",

			"note_title_required": "笔记标题不能为空",
			"note_not_found":      "笔记未找到",
			"tag_name_required":   "标签名称不能为空",

			"database_query":       "数据库查询错误",
			"database_insert":      "数据库插入错误",
			"database_update":      "数据库更新错误",
			"database_delete":      "数据库删除错误",
			"database_transaction": "数据库事务错误",

			"unknown_error": "未知错误",
		},
		LangEnUS: {
			"success":               "Success",
			"internal_server_error": "Internal Server Error",
			"invalid_params":        "Invalid Parameters",
			"unauthorized":          "Unauthorized",
			"forbidden":             "Forbidden",
			"not_found":             "Resource Not Found",

			"auth_token_missing":     "Authentication Token Missing",
			"auth_token_invalid":     "Authentication Token Invalid",
			"auth_token_expired":     "Authentication Token Expired",
			"auth_claims_incomplete": "Token Missing Required Identity Claims",
			"auth_refresh_invalid":   "Refresh Token Invalid",
			"auth_login_disabled":    "Login Endpoint Disabled",

			"note_title_required": "Note Title Required",
			"note_not_found":      "Note Not Found",
			"tag_name_required":   "Tag Name Required",

			"database_query":       "Database Query Error",
			"database_insert":      "Database Insert Error",
			"database_update":      "Database Update Error",
			"database_delete":      "Database Delete Error",
			"database_transaction": "Database Transaction Error",

			"unknown_error": "Unknown Error",
		},
	}
)

// I18n 国际化管理器
type I18n struct {
	translators map[string]ut.Translator
	defaultLang string
}

// GetInstance 获取I18n单例
func GetInstance() *I18n {
	once.Do(func() {
		instance = &I18n{
			translators: make(map[string]ut.Translator),
			defaultLang: LangZhCN,
		}
		instance.initTranslators()
	})
	return instance
}

// initTranslators 初始化翻译器
func (i *I18n) initTranslators() {
	zhCN := zh.New()
	enUS := en_US.New()
	uni := ut.New(zhCN, enUS, zhCN)

	// 注册支持的语言 - 使用locale库的标识符
	langMappings := map[string]string{
		LangZhCN: "zh",
		LangEnUS: "en_US",
	}

	for ourLang, localeLang := range langMappings {
		trans, found := uni.GetTranslator(localeLang)
		if !found {
			logger.Errorf("初始化翻译器失败 for language %s (locale: %s): translator not found", ourLang, localeLang)
			continue
		}
		i.translators[ourLang] = trans
	}
}

// Translate 根据键和语言获取翻译
func (i *I18n) Translate(key, lang string) string {
	if translation, found := translations[lang][key]; found {
		return translation
	}

	// 当前语言没有找到时回退到默认语言
	if lang != i.defaultLang {
		if translation, found := translations[i.defaultLang][key]; found {
			return translation
		}
	}

	logger.Warnf("未找到翻译: %s, 语言: %s", key, lang)
	return key
}

// SetDefaultLanguage 设置默认语言
func (i *I18n) SetDefaultLanguage(lang string) {
	i.defaultLang = lang
}

// GetDefaultLanguage 获取默认语言
func (i *I18n) GetDefaultLanguage() string {
	return i.defaultLang
}

// IsSupportedLanguage 检查语言是否支持
func (i *I18n) IsSupportedLanguage(lang string) bool {
	_, exists := i.translators[lang]
	return exists
}
