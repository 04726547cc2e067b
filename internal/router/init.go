package router

import (
	"github.com/savourie/recettes-api/internal/application"
	"github.com/savourie/recettes-api/internal/container"
	"github.com/savourie/recettes-api/internal/infrastructure/mongodb"
	handlers "github.com/savourie/recettes-api/internal/interface/http"
	"github.com/savourie/recettes-api/internal/router/modules"
)

func buildRecipeModule() *modules.RecipeModule {
	repo := mongodb.NewRecipeRepository(container.GetMongo())
	service := application.NewRecipeService(repo, container.GetLogger())
	handler := handlers.NewRecipeHandler(service, container.GetLogger())
	return modules.NewRecipeModule(handler, container.GetJWT())
}

func buildUserModule() *modules.UserModule {
	repo := mongodb.NewUserRepository(container.GetMongo())
	service := application.NewUserService(repo, container.GetJWT(), container.GetLogger())
	handler := handlers.NewUserHandler(service, container.GetLogger())
	return modules.NewUserModule(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildRecipeModule())
	r.Add(buildUserModule())
}
