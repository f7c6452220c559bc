package utils

import (
	"net"
	"net/http"
	"strings"
	"sync"

	_ "github.com/akolanti/ClaimAPI/cmd/api/docs"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/http-swagger"
)

var once sync.Once
var router *chi.Mux

func GetNewUUID() string {
	return uuid.New().String()
}

// NewClaimID is time ordered so backups of one day sort together.
func NewClaimID() string {
	return ulid.Make().String()
}

type RouterClient struct {
	Router *chi.Mux
}

func GetRouter() RouterClient {
	once.Do(func() {
		router = NewRouter()
	})

	return RouterClient{Router: router}
}

// NewRouter builds a router with swagger and prometheus mounted.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	InitSwagger(r)
	//register prometheus
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func InitSwagger(r *chi.Mux) {
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}

// ClientIP is the first X-Forwarded-For entry, else the remote host.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
