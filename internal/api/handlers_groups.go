package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

func (a *API) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := a.groups.CreateGroup(r.Context(), Actor(r.Context()), req.Name, req.Description, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupView(group), "Group created successfully")
}

func (a *API) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := a.groups.ListGroups(r.Context(), Actor(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupViews(groups), "Groups fetched successfully")
}

func (a *API) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	group, err := a.groups.GetGroup(r.Context(), Actor(r.Context()), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupView(group), "Group fetched successfully")
}
