package domain

// Response captures everything the harness records about one API exchange
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers,omitempty"`
	Data       any               `json:"data"`
	URL        string            `json:"url"`
	Method     string            `json:"method"`
	Attempt    int               `json:"attempt"`
}

// OK reports whether the exchange ended with a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Details converts the response into the map recorded in the report
func (r *Response) Details() map[string]any {
	if r == nil {
		return nil
	}
	d := map[string]any{
		"status_code": r.StatusCode,
		"data":        r.Data,
		"url":         r.URL,
		"method":      r.Method,
		"attempt":     r.Attempt,
	}
	if len(r.Headers) > 0 {
		d["headers"] = r.Headers
	}
	return d
}
