package pipeline_test

import (
	"context"
	"sync"

	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/sources"
)

// fakeResolver serves pages by display name and records every call.
type fakeResolver struct {
	mu     sync.Mutex
	pages  map[string]string
	errs   map[string]error
	panics map[string]bool
	calls  []string
	onCall func(name string)
}

func (f *fakeResolver) Resolve(_ context.Context, displayName, _ string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, displayName)
	f.mu.Unlock()

	if f.onCall != nil {
		f.onCall(displayName)
	}
	if f.panics[displayName] {
		panic("resolver exploded")
	}
	if err, ok := f.errs[displayName]; ok {
		return "", err
	}
	page, ok := f.pages[displayName]
	if !ok {
		return "", &errors.NotFoundError{Resource: "page", ID: displayName}
	}
	return page, nil
}

// fakeSearcher returns one image per query.
type fakeSearcher struct {
	errs    map[string]error
	urls    map[string]string
	images  map[string][]byte
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	if err, ok := f.errs[query]; ok {
		return "", err
	}
	url, ok := f.urls[query]
	if !ok {
		return "", &errors.NotFoundError{Resource: "image", ID: query}
	}
	return url, nil
}

func (f *fakeSearcher) Download(_ context.Context, url string) ([]byte, error) {
	data, ok := f.images[url]
	if !ok {
		return nil, errors.NewAPIError("image", 404, "not found")
	}
	return data, nil
}

// fakeDescriber returns canned descriptions.
type fakeDescriber struct {
	descs map[string]string
	calls []string
}

func (f *fakeDescriber) Describe(_ context.Context, name string) (*sources.Description, error) {
	f.calls = append(f.calls, name)
	text, ok := f.descs[name]
	if !ok {
		return nil, &errors.NotFoundError{Resource: "page", ID: name}
	}
	return &sources.Description{Name: name, Description: text, URL: "https://en.wikipedia.org/wiki/" + name}, nil
}
