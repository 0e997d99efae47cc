package wiki

import (
	"strings"
	"sync"

	gowiki "github.com/trietmn/go-wiki"
)

type summaryFunc func(articleName string, maxSentenceCount int) (string, error)

// LabelDescriber looks labels up in Wikipedia. Labels repeat a lot ("Person", "Cat"), so summaries are cached.
type LabelDescriber struct {
	mutex            sync.Mutex
	summaryCache     map[string]string
	maxSentenceCount int
	getSummary       summaryFunc
}

func NewLabelDescriber(maxSentenceCount int) *LabelDescriber {
	return newLabelDescriber(maxSentenceCount, func(articleName string, maxSentenceCount int) (string, error) {
		return gowiki.Summary(articleName, maxSentenceCount, -1, false, true)
	})
}

func newLabelDescriber(maxSentenceCount int, getSummary summaryFunc) *LabelDescriber {
	if maxSentenceCount <= 0 {
		maxSentenceCount = 1
	}
	return &LabelDescriber{
		summaryCache:     make(map[string]string),
		maxSentenceCount: maxSentenceCount,
		getSummary:       getSummary,
	}
}

func (l *LabelDescriber) DescribeLabel(label string) (string, error) {
	articleName := strings.TrimSpace(label)
	if articleName == "" {
		return "", nil
	}
	cachedSummary, ok := l.getSummaryInCache(articleName)
	if ok {
		return cachedSummary, nil
	}
	summary, err := l.getSummary(articleName, l.maxSentenceCount)
	if err != nil {
		return "", err
	}
	summary = strings.TrimSpace(summary)
	l.cacheSummary(articleName, summary)
	return summary, nil
}

func (l *LabelDescriber) getSummaryInCache(articleName string) (string, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	summary, ok := l.summaryCache[articleName]
	return summary, ok
}

func (l *LabelDescriber) cacheSummary(articleName, summary string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.summaryCache[articleName] = summary
}
