package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) listSaved(c *gin.Context) {
	ids, err := h.repos.Saved(h.db).SelectByStudent(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}

func (h *Handlers) saveInternship(c *gin.Context) {
	err := h.repos.Saved(h.db).Insert(c.Request.Context(), c.Param("studentID"), c.Param("internshipID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) unsaveInternship(c *gin.Context) {
	err := h.repos.Saved(h.db).Delete(c.Request.Context(), c.Param("studentID"), c.Param("internshipID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
