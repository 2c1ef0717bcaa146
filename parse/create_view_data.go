package parse

type CreateViewData struct {
	viewName  string
	queryData *QueryData
}

func NewCreateViewData(viewName string, queryData *QueryData) *CreateViewData {
	return &CreateViewData{
		viewName:  viewName,
		queryData: queryData,
	}
}

func (cvd *CreateViewData) ViewName() string {
	return cvd.viewName
}

// ViewDefinition returns the text of the query defining the view.
func (cvd *CreateViewData) ViewDefinition() string {
	return cvd.queryData.String()
}
