package controllers

type DatasetInfo struct {
	Name       string `json:"name"`
	Manifest   string `json:"manifest"`
	Dictionary bool   `json:"dictionary"`
	Tasks      int    `json:"tasks"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
