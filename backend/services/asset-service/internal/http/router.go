package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	AssetCreate          http.HandlerFunc
	AssetGet             http.HandlerFunc
	AssetUpdate          http.HandlerFunc
	AssetDelete          http.HandlerFunc
	AssetsList           http.HandlerFunc
	AssetConsumption     http.HandlerFunc
	AssetConnectionCheck http.HandlerFunc
	AssetRetrieve        http.HandlerFunc
	AssetsInError        http.HandlerFunc
	Health               http.HandlerFunc
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.AssetCreate != nil {
		mux.Handle("/asset/create", method(http.MethodPost, routes.AssetCreate))
	}
	if routes.AssetGet != nil {
		mux.Handle("/asset", method(http.MethodGet, routes.AssetGet))
	}
	if routes.AssetUpdate != nil {
		mux.Handle("/asset/update", method(http.MethodPut, routes.AssetUpdate))
	}
	if routes.AssetDelete != nil {
		mux.Handle("/asset/delete", method(http.MethodDelete, routes.AssetDelete))
	}
	if routes.AssetsList != nil {
		mux.Handle("/assets", method(http.MethodGet, routes.AssetsList))
	}
	if routes.AssetConsumption != nil {
		mux.Handle("/asset/consumption", method(http.MethodGet, routes.AssetConsumption))
	}
	if routes.AssetConnectionCheck != nil {
		mux.Handle("/asset/connection", method(http.MethodGet, routes.AssetConnectionCheck))
	}
	if routes.AssetRetrieve != nil {
		mux.Handle("/asset/retrieve-consumption", method(http.MethodPost, routes.AssetRetrieve))
	}
	if routes.AssetsInError != nil {
		mux.Handle("/assets/in-error", method(http.MethodGet, routes.AssetsInError))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
