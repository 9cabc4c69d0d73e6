package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/api/rest/handler"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/api/rest/middleware"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/api/ws"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

const (
	routeRegister = "auth.register"
	routeLogin    = "auth.login"
)

// Services are the business operations exposed over HTTP.
type Services struct {
	Auth      handler.AuthService
	Family    handler.FamilyService
	Recipe    handler.RecipeService
	Assistant handler.AssistantService
	Meal      handler.MealService
	Grocery   handler.GroceryService
	Coach     handler.CoachService
	Resolver  middleware.Resolver
}

// Router wires HTTP routes to handlers and middleware.
type Router struct {
	services       Services
	sync           *ws.Handler
	contextManager model.ContextManager
	allowedOrigins []string
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	services Services,
	sync *ws.Handler,
	contextManager model.ContextManager,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		sync:           sync,
		contextManager: contextManager,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Register builds the root handler. Everything under /api except
// registration and login requires a bearer token; the real-time endpoint
// authenticates through its token query parameter.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Resolver, r.contextManager, r.logger)

	root := mux.NewRouter()
	root.HandleFunc("/", handler.Root).Methods(http.MethodGet)
	root.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	r.registerSyncRoutes(root)

	api := root.PathPrefix("/api").Subrouter()
	api.Use(authSkip(authenticate.Handle))
	r.registerAuthRoutes(api)
	r.registerFamilyRoutes(api)
	r.registerRecipeRoutes(api)
	r.registerMealRoutes(api)
	r.registerGroceryRoutes(api)
	r.registerCoachRoutes(api)

	return logging.Handle(middleware.CORS(r.allowedOrigins)(root))
}

// authSkip applies mw to every route except registration and login.
func authSkip(mw mux.MiddlewareFunc) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		protected := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if route := mux.CurrentRoute(req); route != nil {
				if name := route.GetName(); name == routeRegister || name == routeLogin {
					next.ServeHTTP(w, req)
					return
				}
			}
			protected.ServeHTTP(w, req)
		})
	}
}

func (r *Router) registerSyncRoutes(root *mux.Router) {
	root.HandleFunc("/ws/family/{family_id}", r.sync.ServeFamily)
	root.HandleFunc("/ws/test", r.sync.Info).Methods(http.MethodGet)
}

func (r *Router) registerAuthRoutes(api *mux.Router) {
	h := handler.NewAuth(r.services.Auth, r.contextManager, r.logger)
	api.HandleFunc("/auth/register/", h.Register).Methods(http.MethodPost).Name(routeRegister)
	api.HandleFunc("/auth/login/", h.Login).Methods(http.MethodPost).Name(routeLogin)
	api.HandleFunc("/auth/me/", h.Me).Methods(http.MethodGet)
}

func (r *Router) registerFamilyRoutes(api *mux.Router) {
	h := handler.NewFamily(r.services.Family, r.contextManager, r.logger)
	api.HandleFunc("/families/", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/families/", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/families/join/", h.Join).Methods(http.MethodPost)
	api.HandleFunc("/families/leave/", h.Leave).Methods(http.MethodPost)
}

func (r *Router) registerRecipeRoutes(api *mux.Router) {
	h := handler.NewRecipe(r.services.Recipe, r.services.Assistant, r.contextManager, r.logger)
	api.HandleFunc("/recipes/", h.List).Methods(http.MethodGet)
	api.HandleFunc("/recipes/", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/recipes/ai/generate", h.Generate).Methods(http.MethodPost)
	api.HandleFunc("/recipes/ai/suggest", h.Suggest).Methods(http.MethodPost)
	api.HandleFunc("/recipes/{id}", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/recipes/{id}", h.Update).Methods(http.MethodPut)
	api.HandleFunc("/recipes/{id}", h.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/recipes/{id}/photo", h.UploadPhoto).Methods(http.MethodPut)
	api.HandleFunc("/recipes/{id}/photo", h.Photo).Methods(http.MethodGet)
}

func (r *Router) registerMealRoutes(api *mux.Router) {
	h := handler.NewMeal(r.services.Meal, r.contextManager, r.logger)
	api.HandleFunc("/meals/", h.List).Methods(http.MethodGet)
	api.HandleFunc("/meals/", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/meals/week", h.Week).Methods(http.MethodGet)
	api.HandleFunc("/meals/generate-week", h.GenerateWeek).Methods(http.MethodPost)
	api.HandleFunc("/meals/{id}", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/meals/{id}", h.Update).Methods(http.MethodPut)
	api.HandleFunc("/meals/{id}", h.Delete).Methods(http.MethodDelete)
}

func (r *Router) registerGroceryRoutes(api *mux.Router) {
	h := handler.NewGrocery(r.services.Grocery, r.contextManager, r.logger)
	api.HandleFunc("/groceries/", h.List).Methods(http.MethodGet)
	api.HandleFunc("/groceries/", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/groceries/expiring-soon", h.ExpiringSoon).Methods(http.MethodGet)
	api.HandleFunc("/groceries/bulk", h.CreateBulk).Methods(http.MethodPost)
	api.HandleFunc("/groceries/{id}", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/groceries/{id}", h.Update).Methods(http.MethodPut)
	api.HandleFunc("/groceries/{id}", h.Delete).Methods(http.MethodDelete)
}

func (r *Router) registerCoachRoutes(api *mux.Router) {
	h := handler.NewCoach(r.services.Coach, r.contextManager, r.logger)
	api.HandleFunc("/coach/link/", h.Link).Methods(http.MethodPost)
	api.HandleFunc("/coach/unlink/{client_id}", h.Unlink).Methods(http.MethodDelete)
	api.HandleFunc("/coach/clients/", h.Clients).Methods(http.MethodGet)
	api.HandleFunc("/coach/clients/{client_id}/meals", h.ClientMeals).Methods(http.MethodGet)
	api.HandleFunc("/coach/clients/{client_id}/recipes", h.ClientRecipes).Methods(http.MethodGet)
	api.HandleFunc("/coach/my-coach/", h.MyCoach).Methods(http.MethodGet)
}
