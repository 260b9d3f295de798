package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deva-prakash-j/lurniq-api/internal/config"
	httpx "github.com/deva-prakash-j/lurniq-api/internal/http"
	"github.com/deva-prakash-j/lurniq-api/internal/http/handlers"
	"github.com/deva-prakash-j/lurniq-api/internal/http/middleware"
	"github.com/deva-prakash-j/lurniq-api/internal/infrastructure/auth"
	"github.com/deva-prakash-j/lurniq-api/internal/services"
)

// Run wires the container, seeds policies and serves HTTP until the process exits
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	cas, err := auth.NewCasbinService(c.DB, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	c.Casbin = cas
	c.PolicySvc = services.NewPolicyService(cas.E)

	seedPolicies(cas)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Sweeper.Start(ctx)

	authH := handlers.NewAuthHandlers(c.CredentialSvc, c.UserRepo)
	oauthH := handlers.NewOAuthHandlers(c.Resolver, c.TokenSvc, c.Audit)
	adminH := handlers.NewAdminHandlers(c.TokenStore, c.PolicySvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	rlMW := middleware.NewRateLimitMW(c.RequestGate)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, oauthH, adminH, jwtMW, rlMW, casbinMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

func seedPolicies(cas *auth.CasbinService) {
	policies, _ := cas.E.GetPolicy()
	if len(policies) > 0 {
		return
	}
	cas.E.AddPolicy("ADMIN", "/admin/*", "(GET|POST|PUT|DELETE)")
	_ = cas.E.SavePolicy()
	log.Println("casbin: seeded default policies")
}
