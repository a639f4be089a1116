package httputil

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Allow answers an OPTIONS request with the given methods in the allow header.
// OPTIONS is always listed first.
func Allow(c *gin.Context, methods ...string) {
	c.Header("allow", strings.Join(append([]string{http.MethodOptions}, methods...), ", "))
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context) { Allow(c, http.MethodGet) }

func OptionsPost(c *gin.Context) { Allow(c, http.MethodPost) }

func OptionsPut(c *gin.Context) { Allow(c, http.MethodPut) }

func OptionsPatch(c *gin.Context) { Allow(c, http.MethodPatch) }

func OptionsGetPost(c *gin.Context) { Allow(c, http.MethodGet, http.MethodPost) }

func OptionsGetDelete(c *gin.Context) { Allow(c, http.MethodGet, http.MethodDelete) }

func OptionsGetPatchDelete(c *gin.Context) {
	Allow(c, http.MethodGet, http.MethodPatch, http.MethodDelete)
}

func OptionsPatchDelete(c *gin.Context) { Allow(c, http.MethodPatch, http.MethodDelete) }
