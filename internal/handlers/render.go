package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"clamood/console/internal/gateway"
	"clamood/console/internal/guard"
	"clamood/console/internal/middleware"
	"clamood/console/internal/notice"
)

type pageView struct {
	Path     string           `json:"path"`
	Operator string           `json:"operator,omitempty"`
	Menu     []guard.MenuItem `json:"menu,omitempty"`
	Notices  []notice.Notice  `json:"notices"`
	Data     any              `json:"data,omitempty"`
}

// page renders a view model together with the notices queued since the last
// page, which are shown once.
func (h HandlerSet) page(c *gin.Context, data any) {
	s := middleware.CurrentSession(c)
	view := pageView{
		Path:    c.Request.URL.Path,
		Notices: h.notices.Drain(),
		Data:    data,
	}
	if s.IsAuthenticated() {
		view.Operator = guard.Operator(s)
		view.Menu = guard.Menu(s)
	}
	c.JSON(http.StatusOK, view)
}

var classStatus = map[gateway.Class]int{
	gateway.ClassForbidden: http.StatusForbidden,
	gateway.ClassNotFound:  http.StatusNotFound,
	gateway.ClassServer:    http.StatusBadGateway,
	gateway.ClassHTTP:      http.StatusBadGateway,
	gateway.ClassNetwork:   http.StatusGatewayTimeout,
	gateway.ClassRequest:   http.StatusInternalServerError,
	gateway.ClassCanceled:  http.StatusRequestTimeout,
}

// fail renders a failed operation. Validation failures carry their field
// messages. An unauthorized one that ended the session renders nothing so the
// navigation middleware can send the operator to login; one rejected for a
// token a newer login replaced renders 401 and the operator stays. The notice
// for the rest is already queued.
func (h HandlerSet) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	class := gateway.ClassOf(err)
	switch class {
	case gateway.ClassValidation:
		fields, _ := gateway.FieldErrorsOf(err)
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
	case gateway.ClassUnauthorized:
		if h.sessions != nil && h.sessions.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": string(class)})
			return
		}
		c.Abort()
	case "":
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("console operation failed")
		h.notices.Error(gateway.MsgRequest)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gateway.MsgRequest})
	default:
		c.JSON(classStatus[class], gin.H{"error": string(class)})
	}
}

func invalid(c *gin.Context, fields gateway.FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
}

// bindingErrors turns request binding failures into field messages shaped
// like the API's own validation errors.
func bindingErrors(err error) gateway.FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gateway.FieldErrors{"non_field_errors": {"Malformed request body."}}
	}
	out := gateway.FieldErrors{}
	for _, fe := range verrs {
		msg := "Enter a valid value."
		if fe.Tag() == "required" {
			msg = "This field is required."
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}

var fieldNamesOnce sync.Once

func useJSONFieldNames() {
	fieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func queryInt64(c *gin.Context, key string) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		invalid(c, gateway.FieldErrors{"id": {"Enter a valid id."}})
		return 0, false
	}
	return id, true
}
