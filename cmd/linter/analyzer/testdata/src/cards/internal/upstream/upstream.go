package upstream

import "net/http"

func Fetch(target string) (*http.Response, error) {
	return http.DefaultClient.Get(target)
}

func FetchHelper(target string) (*http.Response, error) {
	return http.Get(target)
}
