package version

import (
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/httputil"
)

var build = Object{
	Version:   "0.0.0",
	GoVersion: runtime.Version(),
	Revision:  revision(),
}

type Response struct {
	Data Object `json:"data"` // Build information of the running backend
}

type Object struct {
	Version   string `json:"version" example:"1.4.0"`                                       // Release version
	GoVersion string `json:"goVersion" example:"go1.25.5"`                                  // Go release the binary was built with
	Revision  string `json:"revision" example:"4f2c1e0b9d7a3c5e8f6a1b2d3c4e5f6a7b8c9d0e"` // VCS revision, empty for builds outside of a repository
}

// revision returns the commit the binary was built from.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// RegisterRoutes registers the version endpoint. An empty version keeps
// the default.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	if version != "" {
		build.Version = version
	}

	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Build information
// @Description	Returns the release version, Go version and VCS revision of the backend
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Data: build})
}
