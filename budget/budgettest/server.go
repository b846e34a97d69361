package budgettest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// BasePath is the API root served by the fake.
const BasePath = "/api/v3/"

// Request is one request received by the fake.
type Request struct {
	Path      string
	Query     string
	APIKey    string
	RequestID string
	UserAgent string
}

type override struct {
	status int
	body   string
}

// Server is a fake BudgetYourTrip API.
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	requests  []Request
	overrides map[string]override
}

// New starts a fake API server. Call Close when done.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{overrides: make(map[string]override)}
	engine := gin.New()
	engine.Use(gin.Recovery(), s.record(), s.override(), requireAPIKey())
	s.routes(engine.Group(BasePath))

	s.srv = httptest.NewServer(engine)
	return s
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// URL returns the server root, e.g. http://127.0.0.1:port.
func (s *Server) URL() string {
	return s.srv.URL
}

// BaseURL returns the API root to configure a client with.
func (s *Server) BaseURL() string {
	return s.srv.URL + BasePath
}

// SetResponse makes path (relative to BaseURL) answer with status and a raw
// body instead of the fixture data. The API key is not checked for overridden paths.
func (s *Server) SetResponse(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[BasePath+strings.TrimLeft(path, "/")] = override{status: status, body: body}
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests hit path (relative to BaseURL).
func (s *Server) Count(path string) int {
	full := BasePath + strings.TrimLeft(path, "/")
	n := 0
	for _, r := range s.Requests() {
		if r.Path == full {
			n++
		}
	}
	return n
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Path:      c.Request.URL.Path,
			Query:     c.Request.URL.RawQuery,
			APIKey:    c.GetHeader("X-API-KEY"),
			RequestID: c.GetHeader("X-Request-ID"),
			UserAgent: c.GetHeader("User-Agent"),
		})
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) override() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		o, ok := s.overrides[c.Request.URL.Path]
		s.mu.Unlock()
		if !ok {
			c.Next()
			return
		}
		c.Data(o.status, "application/json", []byte(o.body))
		c.Abort()
	}
}

func requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-API-KEY") != APIKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": false,
				"error":  "Invalid API key",
			})
			return
		}
		c.Next()
	}
}

func (s *Server) routes(g *gin.RouterGroup) {
	g.GET("/categories/", func(c *gin.Context) { respondOK(c, Categories) })
	g.GET("/categories/:id", func(c *gin.Context) {
		respondFound(c, find(Categories, "category_id", c.Param("id")))
	})

	g.GET("/currencies/", func(c *gin.Context) { respondOK(c, Currencies) })
	g.GET("/currencies/:code", func(c *gin.Context) {
		respondFound(c, find(Currencies, "currency_code", strings.ToUpper(c.Param("code"))))
	})
	g.GET("/currencies/convert/:from/:to/:amount", convert)

	g.GET("/locations/:id", func(c *gin.Context) {
		respondFound(c, find(Locations, "geonameid", c.Param("id")))
	})
	g.GET("/search/location/:term", func(c *gin.Context) {
		respondOK(c, search(Locations, c.Param("term"), bare))
	})

	g.GET("/search/country/:term", func(c *gin.Context) {
		respondOK(c, search(Countries, c.Param("term"), countryInfo))
	})

	g.GET("/costs/countryinfo/:code", func(c *gin.Context) {
		country := find(Countries, "country_code", strings.ToUpper(c.Param("code")))
		if country == nil {
			respondNotFound(c)
			return
		}
		respondOK(c, countryInfo(country))
	})
	g.GET("/costs/locationinfo/:id", func(c *gin.Context) {
		location := find(Locations, "geonameid", c.Param("id"))
		if location == nil {
			respondNotFound(c)
			return
		}
		respondOK(c, locationInfo(location))
	})
	g.GET("/costs/country/:code", func(c *gin.Context) {
		costs, ok := CountryCosts[strings.ToUpper(c.Param("code"))]
		if !ok {
			respondNotFound(c)
			return
		}
		respondOK(c, costs)
	})
	g.GET("/costs/location/:id", func(c *gin.Context) {
		costs, ok := LocationCosts[c.Param("id")]
		if !ok {
			respondNotFound(c)
			return
		}
		respondOK(c, costs)
	})
}

func convert(c *gin.Context) {
	from, okFrom := Rates[strings.ToUpper(c.Param("from"))]
	to, okTo := Rates[strings.ToUpper(c.Param("to"))]
	amount, err := strconv.ParseFloat(c.Param("amount"), 64)
	if !okFrom || !okTo || err != nil {
		respondNotFound(c)
		return
	}
	converted := amount / from * to
	respondOK(c, gin.H{"newAmount": strconv.FormatFloat(converted, 'f', 2, 64)})
}

func bare(doc gin.H) gin.H { return doc }

func countryInfo(country gin.H) gin.H {
	return gin.H{"info": country, "costs": CountryCosts[country["country_code"].(string)]}
}

func locationInfo(location gin.H) gin.H {
	id := keyString(location["geonameid"])
	costs := LocationCosts[id]
	if costs == nil {
		costs = []gin.H{}
	}
	return gin.H{"info": location, "costs": costs}
}

// find returns the first document whose key renders as value.
func find(docs []gin.H, key, value string) gin.H {
	for _, d := range docs {
		if keyString(d[key]) == value {
			return d
		}
	}
	return nil
}

// search matches term against document names, case-insensitively.
// An empty result is served as an empty list.
func search(docs []gin.H, term string, wrap func(gin.H) gin.H) []gin.H {
	term = strings.ToLower(term)
	out := []gin.H{}
	for _, d := range docs {
		if name, _ := d["name"].(string); strings.Contains(strings.ToLower(name), term) {
			out = append(out, wrap(d))
		}
	}
	return out
}

func keyString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"status": true, "data": data})
}

func respondFound(c *gin.Context, doc gin.H) {
	if doc == nil {
		respondNotFound(c)
		return
	}
	respondOK(c, doc)
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"status": false, "error": "Not found"})
}
