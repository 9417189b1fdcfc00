package sdktest

import (
	"net/http"
	"strconv"
	"strings"
)

type categoryView struct {
	Category
	ServicerName  string `json:"servicerName"`
	ResourceCount int    `json:"resourceCount"`
	CreatedAt     string `json:"createdAt"`
}

type resourceView struct {
	Resource
	CategoryName string `json:"categoryName"`
	ServicerID   int64  `json:"servicerId"`
	ServicerName string `json:"servicerName"`
}

type categoryBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type resourceBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId"`
	Location    string `json:"location"`
	Capacity    *int   `json:"capacity"`
	IsAvailable *bool  `json:"isAvailable"`
}

func (s *Server) categoryViewLocked(c *Category) categoryView {
	count := 0
	for _, r := range s.resources {
		if r.CategoryID == c.ID {
			count++
		}
	}
	view := categoryView{Category: *c, ResourceCount: count, CreatedAt: formatLocal(c.CreatedAt)}
	if owner, ok := s.users[c.ServicerID]; ok {
		view.ServicerName = owner.Name
	}
	return view
}

func (s *Server) resourceViewLocked(r *Resource) resourceView {
	view := resourceView{Resource: *r}
	if c, ok := s.categories[r.CategoryID]; ok {
		view.CategoryName = c.Name
		view.ServicerID = c.ServicerID
		if owner, ok := s.users[c.ServicerID]; ok {
			view.ServicerName = owner.Name
		}
	}
	return view
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := []categoryView{}
	for _, id := range sortedIDs(s.categories) {
		views = append(views, s.categoryViewLocked(s.categories[id]))
	}
	writeOK(w, http.StatusOK, views, "")
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		writeFail(w, http.StatusBadRequest, "Category not found")
		return
	}
	writeOK(w, http.StatusOK, s.categoryViewLocked(c), "")
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	var categoryID int64
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		categoryID = id
	}
	search := strings.ToLower(r.URL.Query().Get("search"))

	s.mu.Lock()
	defer s.mu.Unlock()
	views := []resourceView{}
	for _, id := range sortedIDs(s.resources) {
		res := s.resources[id]
		if categoryID != 0 && res.CategoryID != categoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(res.Name), search) &&
			!strings.Contains(strings.ToLower(res.Description), search) {
			continue
		}
		views = append(views, s.resourceViewLocked(res))
	}
	writeOK(w, http.StatusOK, views, "")
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.resources[id]
	if !ok {
		writeFail(w, http.StatusBadRequest, "Resource not found")
		return
	}
	writeOK(w, http.StatusOK, s.resourceViewLocked(res), "")
}

func (s *Server) handleMyCategories(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	views := []categoryView{}
	for _, id := range sortedIDs(s.categories) {
		if c := s.categories[id]; c.ServicerID == me.ID {
			views = append(views, s.categoryViewLocked(c))
		}
	}
	writeOK(w, http.StatusOK, views, "")
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var body categoryBody
	if err := decodeBody(r, &body); err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeFail(w, http.StatusBadRequest, "Name is required")
		return
	}
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &Category{ID: s.id(), Name: body.Name, Description: body.Description, ServicerID: me.ID, CreatedAt: s.now()}
	s.categories[c.ID] = c
	writeOK(w, http.StatusCreated, s.categoryViewLocked(c), "Category created successfully")
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	var body categoryBody
	if err := decodeBody(r, &body); err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	switch {
	case !ok:
		writeFail(w, http.StatusBadRequest, "Category not found")
		return
	case c.ServicerID != me.ID:
		writeFail(w, http.StatusBadRequest, "You can only update your own categories")
		return
	}
	c.Name, c.Description = body.Name, body.Description
	writeOK(w, http.StatusOK, s.categoryViewLocked(c), "Category updated successfully")
}

// handleDeleteCategory removes the category and, like the real backend's
// cascade, every resource in it.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	switch {
	case !ok:
		writeFail(w, http.StatusBadRequest, "Category not found")
		return
	case c.ServicerID != me.ID:
		writeFail(w, http.StatusBadRequest, "You can only delete your own categories")
		return
	}
	delete(s.categories, id)
	for rid, res := range s.resources {
		if res.CategoryID == id {
			delete(s.resources, rid)
		}
	}
	writeOK(w, http.StatusOK, nil, "Category deleted successfully")
}

func (s *Server) handleMyResources(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	views := []resourceView{}
	for _, id := range sortedIDs(s.resources) {
		view := s.resourceViewLocked(s.resources[id])
		if view.ServicerID == me.ID {
			views = append(views, view)
		}
	}
	writeOK(w, http.StatusOK, views, "")
}

func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	var body resourceBody
	if err := decodeBody(r, &body); err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[body.CategoryID]
	switch {
	case !ok:
		writeFail(w, http.StatusBadRequest, "Category not found")
		return
	case c.ServicerID != me.ID:
		writeFail(w, http.StatusBadRequest, "You can only add resources to your own categories")
		return
	}
	res := &Resource{
		ID:          s.id(),
		Name:        body.Name,
		Description: body.Description,
		CategoryID:  body.CategoryID,
		Location:    body.Location,
		Capacity:    body.Capacity,
		IsAvailable: body.IsAvailable == nil || *body.IsAvailable,
	}
	s.resources[res.ID] = res
	writeOK(w, http.StatusCreated, s.resourceViewLocked(res), "Resource created successfully")
}

func (s *Server) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	var body resourceBody
	if err := decodeBody(r, &body); err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.resources[id]
	if !ok {
		writeFail(w, http.StatusBadRequest, "Resource not found")
		return
	}
	if s.resourceViewLocked(res).ServicerID != me.ID {
		writeFail(w, http.StatusBadRequest, "You can only update your own resources")
		return
	}
	if body.CategoryID != 0 && body.CategoryID != res.CategoryID {
		c, ok := s.categories[body.CategoryID]
		if !ok || c.ServicerID != me.ID {
			writeFail(w, http.StatusBadRequest, "You can only use your own categories")
			return
		}
		res.CategoryID = body.CategoryID
	}
	res.Name, res.Description, res.Location, res.Capacity = body.Name, body.Description, body.Location, body.Capacity
	if body.IsAvailable != nil {
		res.IsAvailable = *body.IsAvailable
	}
	writeOK(w, http.StatusOK, s.resourceViewLocked(res), "Resource updated successfully")
}

func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	me := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.resources[id]
	if !ok {
		writeFail(w, http.StatusBadRequest, "Resource not found")
		return
	}
	if s.resourceViewLocked(res).ServicerID != me.ID {
		writeFail(w, http.StatusBadRequest, "You can only delete your own resources")
		return
	}
	delete(s.resources, id)
	writeOK(w, http.StatusOK, nil, "Resource deleted successfully")
}
