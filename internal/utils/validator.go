package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/spf13/viper"
)

var trans ut.Translator

// InitTrans 初始化 gin binding 的翻译器，server.lang 取 en 或 zh
func InitTrans() {
	lang := viper.GetString("server.lang")
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// 错误信息里使用 json/uri tag 作为字段名
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "uri"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})

	enT := en.New()
	uni := ut.New(enT, enT, zh.New())

	trans, ok = uni.GetTranslator(lang)
	if !ok {
		panic(fmt.Errorf("uni.GetTranslator(%s) failed", lang))
	}

	var err error
	if lang == "zh" {
		err = zhTranslations.RegisterDefaultTranslations(v, trans)
	} else {
		err = enTranslations.RegisterDefaultTranslations(v, trans)
	}
	if err != nil {
		panic(err.Error())
	}
}

// ParseToValidationError 把 binding 错误转换为可以直接返回给客户端的内容
func ParseToValidationError(err error) any {
	if v, ok := err.(validator.ValidationErrors); ok && trans != nil {
		return v.Translate(trans)
	}
	return "invalid parameter"
}
