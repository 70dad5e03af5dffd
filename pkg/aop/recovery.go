package aop

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/flashcatcloud/thriftmux/pkg/ierr"
)

// Recovery turns a panicking handler into a response instead of a crashed
// connection. A panic with a pkg/ierr.PageError or pkg/ierr.ResponseError
// produces the response it names; any other panic value becomes a plain
// 500 with the recovered value's message.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}

			switch e := v.(type) {
			case ierr.PageError:
				c.String(e.Code, e.Message)
			case ierr.ResponseError:
				c.Data(e.Code, e.ContentType, e.Body)
			case error:
				c.String(http.StatusInternalServerError, e.Error())
			default:
				c.String(http.StatusInternalServerError, fmt.Sprint(v))
			}

			fmt.Println(string(debug.Stack()))
			c.Abort()
		}()

		c.Next()
	}
}
