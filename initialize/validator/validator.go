package validator

import (
	"reflect"
	"sort"
	"strings"

	"punch/global"
	"punch/model/common/localTime"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/pkg/errors"
)

func Init() (err error) {
	v := validator.New()
	// 报错时使用配置文件里的字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err = v.RegisterValidation("clock", clock); err != nil {
		return
	}

	zhT := zh.New()
	uni := ut.New(zhT, zhT)
	trans, _ := uni.GetTranslator("zh")
	if err = zhTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return
	}
	err = v.RegisterTranslation("clock", trans, func(ut ut.Translator) error {
		return ut.Add("clock", "{0}必须是HH:MM格式", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("clock", fe.Field())
		return t
	})
	if err != nil {
		return
	}
	global.GLOAB_VALIDATOR = v
	global.GLOAB_TRANS = trans
	return nil
}

// clock 校验 "10:20" 这种格式
func clock(fl validator.FieldLevel) bool {
	_, err := localTime.ParseClock(fl.Field().String())
	return err == nil
}

// Struct 校验结构体，错误信息翻译成中文
func Struct(s interface{}) error {
	if global.GLOAB_VALIDATOR == nil {
		if err := Init(); err != nil {
			return err
		}
	}
	err := global.GLOAB_VALIDATOR.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(errs))
	for field, msg := range errs.Translate(global.GLOAB_TRANS) {
		msgs = append(msgs, field+": "+msg)
	}
	sort.Strings(msgs)
	return errors.New(strings.Join(msgs, "; "))
}
