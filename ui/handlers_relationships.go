package ui

import (
	"net/http"

	"sheetlens/domain/dataset"
)

// relationshipsPage is the declaration form and the declared relationships
type relationshipsPage struct {
	Datasets      []*dataset.Dataset
	Relationships []dataset.RelationshipView
	Form          relationshipForm
	Error         string
}

func (a *App) relationshipsData() relationshipsPage {
	return relationshipsPage{
		Datasets:      a.workspace.Datasets(),
		Relationships: a.workspace.Relationships(),
	}
}

func (a *App) handleRelationships(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "relationships.html", a.relationshipsData())
}

func (a *App) handleAddRelationship(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := relationshipForm{
		SourceFileID: r.PostForm.Get("source_file_id"),
		SourceKey:    r.PostForm.Get("source_key"),
		TargetFileID: r.PostForm.Get("target_file_id"),
		TargetKey:    r.PostForm.Get("target_key"),
	}
	if _, err := a.workspace.AddRelationship(form.toRelationship()); err != nil {
		page := a.relationshipsData()
		page.Form = form
		var status int
		page.Error, status = errorStatus(err)
		a.renderTemplate(w, status, "relationships.html", page)
		return
	}

	http.Redirect(w, r, "/relationships", http.StatusSeeOther)
}
