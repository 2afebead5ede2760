package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sheetlens/domain/core"
	"sheetlens/domain/dataset"
	"sheetlens/internal/analysis"
)

// indexPage is the upload form and the loaded datasets
type indexPage struct {
	Datasets []*dataset.Dataset
	MaxFiles int
	CanAdd   bool
	Error    string
}

// datasetPage is the detail view of one dataset
type datasetPage struct {
	Dataset        *dataset.Dataset
	Overview       dataset.Overview
	Preview        dataset.Preview
	Classification dataset.ColumnClassification
	Profiles       []dataset.ColumnProfile
	Groupable      []string
	Operations     []dataset.Operation
	Form           summaryForm
	Summary        []dataset.SummaryRow
	SummaryMax     float64
	HasSummary     bool
	Error          string
}

func (a *App) indexData() indexPage {
	registry, _ := a.workspace.Snapshot()
	return indexPage{
		Datasets: registry.List(),
		MaxFiles: registry.MaxFiles(),
		CanAdd:   registry.CanAccept(1),
	}
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "index.html", a.indexData())
}

func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if a.options.MaxUploadBytes > 0 {
		registry, _ := a.workspace.Snapshot()
		r.Body = http.MaxBytesReader(w, r.Body, a.options.MaxUploadBytes*int64(registry.MaxFiles())+1<<20)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		page := a.indexData()
		page.Error = "Choose one or more Excel files to upload"
		a.renderTemplate(w, http.StatusBadRequest, "index.html", page)
		return
	}

	uploads, err := readUploads(r.MultipartForm.File[uploadField], a.options.MaxUploadBytes)
	if err == nil {
		_, err = a.workspace.Upload(r.Context(), uploads)
	}
	if err != nil {
		page := a.indexData()
		message, status := errorStatus(err)
		page.Error = message
		a.renderTemplate(w, status, "index.html", page)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleRemove(w http.ResponseWriter, r *http.Request) {
	if err := a.workspace.Remove(core.ID(chi.URLParam(r, "id"))); err != nil {
		page := a.indexData()
		message, status := errorStatus(err)
		page.Error = message
		a.renderTemplate(w, status, "index.html", page)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleDatasetDetail(w http.ResponseWriter, r *http.Request) {
	id := core.ID(chi.URLParam(r, "id"))

	ds, err := a.workspace.Dataset(id)
	if err != nil {
		page := a.indexData()
		message, status := errorStatus(err)
		page.Error = message
		a.renderTemplate(w, status, "index.html", page)
		return
	}

	classification, err := a.workspace.Classify(id)
	if err != nil {
		message, status := errorStatus(err)
		http.Error(w, message, status)
		return
	}

	// profiling is optional on the page
	profiles, _ := a.workspace.Profile(id)

	page := datasetPage{
		Dataset:        ds,
		Overview:       analysis.Overview(ds),
		Preview:        analysis.Preview(ds, a.options.PreviewRows),
		Classification: classification,
		Profiles:       profiles,
		Groupable:      analysis.GroupableFields(ds),
		Operations:     []dataset.Operation{dataset.OperationCount, dataset.OperationSum, dataset.OperationAverage},
		Form: summaryForm{
			GroupByField: r.URL.Query().Get("group_by"),
			ValueField:   r.URL.Query().Get("value_field"),
			Operation:    r.URL.Query().Get("operation"),
			DateFrom:     r.URL.Query().Get("date_from"),
			DateTo:       r.URL.Query().Get("date_to"),
		},
	}

	status := http.StatusOK
	if page.Form.GroupByField != "" {
		rows, err := a.summarize(id, page.Form)
		if err != nil {
			page.Error, status = errorStatus(err)
		} else {
			page.Summary = rows
			page.HasSummary = true
			for _, row := range rows {
				if row.Value > page.SummaryMax {
					page.SummaryMax = row.Value
				}
			}
		}
	}

	a.renderTemplate(w, status, "dataset.html", page)
}

func (a *App) summarize(id core.ID, form summaryForm) ([]dataset.SummaryRow, error) {
	req, err := form.toRequest(id)
	if err != nil {
		return nil, err
	}
	return a.workspace.Summarize(req)
}
