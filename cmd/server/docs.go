package main

// @title Book Bank API
// @version 1.0
// @description Book recommendation service: accounts, recommendations, likes, comments and catalog search.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

// @tag.name Auth
// @tag.description Registration, login and token endpoints

// @tag.name Users
// @tag.description Account endpoints

// @tag.name Recommendations
// @tag.description Recommendation, like and comment endpoints

// @tag.name Search
// @tag.description Book catalog search

// @tag.name Health
// @tag.description Health check endpoints
