package card

import (
	"net/http"
	"net/url"
)

func FetchDirect(target string) error {
	resp, err := http.Get(target) // want "http.Get is forbidden outside internal/upstream"
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func Probe(target string) {
	http.Head(target)                       // want "http.Head is forbidden outside internal/upstream"
	http.Post(target, "image/svg+xml", nil) // want "http.Post is forbidden outside internal/upstream"
	http.PostForm(target, url.Values{})     // want "http.PostForm is forbidden outside internal/upstream"
}

func Client() *http.Client {
	return http.DefaultClient // want "http.DefaultClient is forbidden outside internal/upstream"
}

func Helper() func(string) (*http.Response, error) {
	return http.Get // want "http.Get is forbidden outside internal/upstream"
}

func Allowed(target string) (*http.Request, error) {
	client := &http.Client{}
	_ = client
	return http.NewRequest(http.MethodGet, target, nil)
}
