package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"clamood/console/internal/models"
	"clamood/console/internal/service"
)

func memberFilter(c *gin.Context) models.MemberFilter {
	page := queryInt(c, "page")
	if page == 0 {
		page = 1
	}
	return models.MemberFilter{
		Page:             page,
		Search:           c.Query("search"),
		MembershipStatus: models.MembershipStatus(c.Query("membership_status")),
		Branch:           queryInt64(c, "branch"),
	}
}

func (h HandlerSet) ListMembers(c *gin.Context) {
	ctx := c.Request.Context()
	filter := memberFilter(c)
	h.screen.Show(c.Request.URL.Path,
		service.MemberListKey(filter),
		service.MemberStatsKey(),
		service.BranchListKey(),
	)

	members, err := h.members.List(ctx, filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	stats, err := h.members.Stats(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	branches, err := h.members.Branches(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.page(c, gin.H{
		"members":  members,
		"stats":    stats,
		"branches": branches.Results,
		"page":     filter.Page,
	})
}

func (h HandlerSet) GetMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.screen.Show(c.Request.URL.Path, service.MemberKey(id))

	member, err := h.members.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.page(c, gin.H{"member": member})
}

func (h HandlerSet) CreateMember(c *gin.Context) {
	var form models.MemberForm
	if err := c.ShouldBindJSON(&form); err != nil {
		invalid(c, bindingErrors(err))
		return
	}

	member, err := h.members.Create(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h HandlerSet) UpdateMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var form models.MemberForm
	if err := c.ShouldBindJSON(&form); err != nil {
		invalid(c, bindingErrors(err))
		return
	}

	member, err := h.members.Update(c.Request.Context(), id, form)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h HandlerSet) DeleteMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.members.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h HandlerSet) ExportMembers(c *gin.Context) {
	export, err := h.exports.Members(c.Request.Context(), memberFilter(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	if export.URL != "" {
		c.JSON(http.StatusOK, gin.H{
			"name": export.Name,
			"rows": export.Rows,
			"url":  export.URL,
		})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Name))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
