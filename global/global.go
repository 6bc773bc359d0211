package global

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

var (
	GLOAB_CORN      *cron.Cron
	GLOAB_VALIDATOR *validator.Validate
	GLOAB_TRANS     ut.Translator
)
