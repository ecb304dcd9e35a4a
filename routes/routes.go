package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"citypulse/db"
	"citypulse/decision"
	"citypulse/handlers"
	"citypulse/processor"
)

func SetupRouter(p *processor.Processor, engine *decision.Engine, store *db.Store, clientURL string) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if clientURL != "" {
		corsConfig.AllowOrigins = []string{clientURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "CityPulse backend running"})
	})

	api := r.Group("/api")
	{
		api.POST("/upload", func(c *gin.Context) {
			handlers.Upload(c, p)
		})
		api.POST("/analysis/analyze", func(c *gin.Context) {
			handlers.Analyze(c, engine)
		})

		incident := api.Group("/incident")
		{
			incident.POST("/create", func(c *gin.Context) {
				handlers.CreateIncident(c, store)
			})
			incident.GET("/all", func(c *gin.Context) {
				handlers.GetAllIncidents(c, store)
			})
			incident.GET("/stats", func(c *gin.Context) {
				handlers.GetIncidentStats(c, store)
			})
			incident.GET("/threshold", handlers.GetConfidenceThreshold)
			incident.GET("/status/review", func(c *gin.Context) {
				handlers.GetIncidentsNeedingReview(c, store)
			})
			incident.GET("/status/approved", func(c *gin.Context) {
				handlers.GetApprovedIncidents(c, store)
			})
			incident.GET("/:id", func(c *gin.Context) {
				handlers.GetIncidentByID(c, store)
			})
		}
	}

	return r
}
