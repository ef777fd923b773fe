// Package httpapi exposes the keyspace as JSON over HTTP.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Avik32223/ringd/internal/store"
	"github.com/Avik32223/ringd/pkg/ring"
)

type Handler struct {
	keyspace *store.Keyspace
	log      *slog.Logger
}

func New(ks *store.Keyspace, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{keyspace: ks, log: log}
}

type valueRequest struct {
	Value *int `json:"value" binding:"required"`
}

type insertRequest struct {
	Index *int `json:"index" binding:"required"`
	Value *int `json:"value" binding:"required"`
}

type ringResponse struct {
	Key    string `json:"key"`
	Size   int    `json:"size"`
	Values []int  `json:"values"`
}

// Router builds the gin engine serving h.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.logRequests)

	router.GET("/rings", h.listRings)
	rings := router.Group("/rings/:key")
	{
		rings.GET("", h.getRing)
		rings.DELETE("", h.deleteRing)
		rings.POST("/front", h.push(true))
		rings.POST("/back", h.push(false))
		rings.DELETE("/front", h.pop(true))
		rings.DELETE("/back", h.pop(false))
		rings.POST("/items", h.insertAt)
		rings.GET("/items/:index", h.valueAt)
		rings.PUT("/items/:index", h.setValueAt)
		rings.DELETE("/items/:index", h.removeAt)
		rings.GET("/search", h.search)
		rings.POST("/reverse", h.reverse)
	}
	return router
}

func (h *Handler) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.Debug("http: request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrKeyAbsent):
		status = http.StatusNotFound
	case errors.Is(err, ring.ErrIndexOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, ring.ErrEmptyList):
		status = http.StatusConflict
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func indexParam(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, errors.New("index must be an integer"))
		return 0, false
	}
	return i, true
}

func (h *Handler) listRings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": h.keyspace.Keys()})
}

func (h *Handler) getRing(c *gin.Context) {
	key := c.Param("key")
	res := ringResponse{Key: key}
	err := h.keyspace.View(key, func(r *ring.Ring) error {
		res.Size = r.Len()
		if c.Query("order") == "reverse" {
			res.Values = r.ToSliceReverse()
		} else {
			res.Values = r.ToSlice()
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) deleteRing(c *gin.Context) {
	if h.keyspace.Delete(c.Param("key")) == 0 {
		abortWithError(c, store.ErrKeyAbsent)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) push(front bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req valueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		size := 0
		h.keyspace.Update(c.Param("key"), true, func(r *ring.Ring) error {
			if front {
				r.Prepend(*req.Value)
			} else {
				r.Append(*req.Value)
			}
			size = r.Len()
			return nil
		})
		c.JSON(http.StatusCreated, gin.H{"size": size})
	}
}

func (h *Handler) pop(front bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var v int
		err := h.keyspace.Update(c.Param("key"), false, func(r *ring.Ring) (err error) {
			if front {
				v, err = r.RemoveFront()
			} else {
				v, err = r.RemoveBack()
			}
			return err
		})
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"value": v})
	}
}

func (h *Handler) insertAt(c *gin.Context) {
	var req insertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	size := 0
	err := h.keyspace.Update(c.Param("key"), true, func(r *ring.Ring) error {
		if _, err := r.InsertAt(*req.Value, *req.Index); err != nil {
			return err
		}
		size = r.Len()
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"size": size})
}

func (h *Handler) valueAt(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	var v int
	err := h.keyspace.View(c.Param("key"), func(r *ring.Ring) (err error) {
		v, err = r.ValueAt(i)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": v})
}

func (h *Handler) setValueAt(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := h.keyspace.Update(c.Param("key"), false, func(r *ring.Ring) error {
		e, err := r.NodeAt(i)
		if err != nil {
			return err
		}
		return r.SetValue(e, *req.Value)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": *req.Value})
}

func (h *Handler) removeAt(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	var v int
	err := h.keyspace.Update(c.Param("key"), false, func(r *ring.Ring) (err error) {
		v, err = r.RemoveAt(i)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": v})
}

func (h *Handler) search(c *gin.Context) {
	v, err := strconv.Atoi(c.Query("value"))
	if err != nil {
		badRequest(c, errors.New("value must be an integer"))
		return
	}
	found, index := false, -1
	err = h.keyspace.View(c.Param("key"), func(r *ring.Ring) error {
		index = r.IndexOf(v)
		found = index >= 0
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": found, "index": index})
}

func (h *Handler) reverse(c *gin.Context) {
	var values []int
	err := h.keyspace.Update(c.Param("key"), false, func(r *ring.Ring) error {
		r.Reverse()
		values = r.ToSlice()
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": values})
}
