package http

import "github.com/gin-gonic/gin"

// RegisterLedgerRoutes monta /income, /expense y /report.
func RegisterLedgerRoutes(r gin.IRoutes, incomes, expenses *EntryHandler, report *ReportHandler) {
	for prefix, h := range map[string]*EntryHandler{"/income": incomes, "/expense": expenses} {
		r.GET(prefix+"/list", h.List)
		r.GET(prefix+"/get/:id", h.Get)
		r.POST(prefix+"/add", h.Add)
		r.PUT(prefix+"/update", h.Update)
		r.DELETE(prefix+"/delete/:id", h.Delete)
	}
	r.GET("/report/balance", report.Balance)
}
