package main

import (
	"github.com/CPU-commits/Intranet_BAttainment/feed/server"
)

// @title          Attainment Feed API
// @version        1.0
// @description    API Server for the write requests of the co-attainment service

// @tag.name        attainment
// @tag.description Academic records and co-attainment

// @host     localhost:8080
// @BasePath /api/c/attainment

// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       Authorization
// @description                BearerJWTToken in Authorization Header

// @accept  json
// @produce json
func main() {
	server.Init()
}
