package router

import (
	"github.com/raihansp/wishwell/internal/application"
	"github.com/raihansp/wishwell/internal/container"
	pginfra "github.com/raihansp/wishwell/internal/infrastructure/postgres"
	"github.com/raihansp/wishwell/internal/infrastructure/redisstore"
	handlers "github.com/raihansp/wishwell/internal/interface/http"
	"github.com/raihansp/wishwell/internal/router/modules"
	"github.com/raihansp/wishwell/pkg/helpers"
)

// ModuleDeps holds every repository, service, and handler the feature
// modules share. Built once at startup from the container singletons.
type ModuleDeps struct {
	Accounts *application.AccountService
	Wishes   *application.WishService
	Drafts   *application.DraftService
	Lists    *application.WishListService

	AccountHandler  *handlers.AccountHandler
	WishHandler     *handlers.WishHandler
	DraftHandler    *handlers.DraftHandler
	WishListHandler *handlers.WishListHandler
}

func buildDeps() ModuleDeps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	rdb := container.GetRedis()
	logger := container.GetLogger()

	accountRepo := pginfra.NewAccountRepository(pool)
	wishRepo := pginfra.NewWishRepository(pool)
	wishlistRepo := pginfra.NewWishListRepository(pool)
	draftStore := redisstore.NewDraftStore(rdb, cfg.DraftTTL)

	accounts := application.NewAccountService(accountRepo, container.GetJWT(), rdb, logger, container.GetES(), cfg.ESAccountsIndex)
	wishes := application.NewWishService(wishRepo, wishlistRepo, logger)
	drafts := application.NewDraftService(draftStore, wishRepo)
	lists := application.NewWishListService(wishlistRepo, wishRepo, accountRepo, draftStore, logger)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	return ModuleDeps{
		Accounts: accounts,
		Wishes:   wishes,
		Drafts:   drafts,
		Lists:    lists,

		AccountHandler:  handlers.NewAccountHandler(accounts, cookies, logger),
		WishHandler:     handlers.NewWishHandler(wishes),
		DraftHandler:    handlers.NewDraftHandler(drafts),
		WishListHandler: handlers.NewWishListHandler(lists),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewAccountModule(deps.AccountHandler, jwt))
	r.Add(modules.NewWishModule(deps.WishHandler, jwt))
	r.Add(modules.NewWishListModule(deps.WishListHandler, deps.DraftHandler, jwt))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
