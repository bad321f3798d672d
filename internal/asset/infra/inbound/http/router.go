package http

import "github.com/gin-gonic/gin"

func RegisterAssetRoutes(r gin.IRoutes, handler *AssetHandler) {
	r.GET("/asset/list", handler.ListAssets)
	r.GET("/asset/get/:id", handler.GetAsset)
	r.POST("/asset/add", handler.AddAsset)
	r.PUT("/asset/update", handler.UpdateAsset)
	r.DELETE("/asset/delete/:id", handler.DeleteAsset)
}
