package model

import (
	"strings"

	"github.com/gin-gonic/gin"
	json "github.com/json-iterator/go"
)

type Decoder interface {
	Decode(ctx *gin.Context) error
	Validate() error
}

func Decode(ctx *gin.Context, decoder Decoder) error {
	if err := decoder.Decode(ctx); err != nil {
		return err
	}
	if err := decoder.Validate(); err != nil {
		return err
	}
	return nil
}

func isJSON(ctx *gin.Context) bool {
	return strings.HasPrefix(ctx.ContentType(), gin.MIMEJSON)
}

// decodeBody reads a JSON body, or form fields into the string fields
// named by form for browser form posts.
func decodeBody(ctx *gin.Context, v any, form map[string]*string) error {
	if isJSON(ctx) {
		return json.NewDecoder(ctx.Request.Body).Decode(v)
	}
	for name, dst := range form {
		*dst = ctx.PostForm(name)
	}
	return nil
}
