package versionMiddleware

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	problemMiddleware "github.com/gmaschi/go-recipe-book-api/internal/controllers/middlewares/problem"
	"github.com/gmaschi/go-recipe-book-api/pkg/tools/parseErrors"
)

const (
	HeaderKey                  = "Api-Version"
	AlternateHeaderKey         = "X-Api-Version"
	SupportedVersionsHeaderKey = "api-supported-versions"

	ParamKey   = "version"
	VersionKey = "api_version"

	DefaultVersion = 1
)

// SupportedVersions lists every major version served, oldest first.
var SupportedVersions = []int{1}

var segmentPattern = regexp.MustCompile(`^v(\d+)(?:\.0)?$`)

// VersionMiddleware resolves the requested API version from the :version path
// segment and rejects versions that are not served.
func VersionMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := ctx.Param(ParamKey)
		version, ok := Parse(raw)
		if !ok || !IsSupported(version) {
			problem := parseErrors.ErrorResponse(http.StatusBadRequest)
			problem.Title = "Unsupported API version"
			problem.Detail = fmt.Sprintf("The requested API version '%s' is not supported. Supported versions: %s.",
				strings.TrimPrefix(raw, "v"), supportedList())
			problemMiddleware.Render(ctx, problem)
			return
		}

		ctx.Set(VersionKey, version)
		ctx.Next()
	}
}

// FromContext returns the version resolved for the request.
func FromContext(ctx *gin.Context) int {
	if v, ok := ctx.Get(VersionKey); ok {
		if version, ok := v.(int); ok {
			return version
		}
	}
	return DefaultVersion
}

// Parse reads a "v{N}" path segment; "v{N}.0" is accepted too.
func Parse(segment string) (int, bool) {
	m := segmentPattern.FindStringSubmatch(segment)
	if m == nil {
		return 0, false
	}
	version, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return version, true
}

func IsSupported(version int) bool {
	for _, v := range SupportedVersions {
		if v == version {
			return true
		}
	}
	return false
}

// ReportSupported sets the api-supported-versions response header.
func ReportSupported(header http.Header) {
	header.Set(SupportedVersionsHeaderKey, supportedList())
}

// Rewrite maps an unversioned path under prefix ("/api/recipes/...") to its
// versioned form ("/api/v1/recipes/..."), taking the version from the
// Api-Version or X-Api-Version header. Other requests are returned unchanged.
func Rewrite(r *http.Request, apiRoot, resource string) *http.Request {
	prefix := apiRoot + "/" + resource
	rest, found := strings.CutPrefix(r.URL.Path, prefix)
	if !found || (rest != "" && !strings.HasPrefix(rest, "/")) {
		return r
	}

	version := headerVersion(r.Header)
	rewritten := r.Clone(r.Context())
	rewritten.URL.Path = apiRoot + "/v" + url.PathEscape(version) + "/" + resource + rest
	rewritten.URL.RawPath = ""
	return rewritten
}

func headerVersion(header http.Header) string {
	for _, key := range []string{HeaderKey, AlternateHeaderKey} {
		if v := strings.TrimSpace(header.Get(key)); v != "" {
			return v
		}
	}
	return strconv.Itoa(DefaultVersion)
}

func supportedList() string {
	versions := make([]string, 0, len(SupportedVersions))
	for _, v := range SupportedVersions {
		versions = append(versions, strconv.Itoa(v))
	}
	return strings.Join(versions, ", ")
}
