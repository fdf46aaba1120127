package catalog

import "strings"

// topicAliases maps the spellings learners actually type to topic IDs.
var topicAliases = map[string]string{
	"pipeline":             TopicPipelines,
	"data pipelines":       TopicPipelines,
	"data pipeline":        TopicPipelines,
	"data modeling":        TopicModeling,
	"data modelling":       TopicModeling,
	"model":                TopicModeling,
	"modelling":            TopicModeling,
	"system design":        TopicSystemDesign,
	"sys design":           TopicSystemDesign,
	"sysdesign":            TopicSystemDesign,
	"debug":                TopicDebugging,
	"cloud infrastructure": TopicCloud,
	"infrastructure":       TopicCloud,
	"aws":                  TopicCloud,
	"gcp":                  TopicCloud,
	"azure":                TopicCloud,
	"coding":               TopicPython,
	"python coding":        TopicPython,
	"data quality":         TopicDataQuality,
	"quality":              TopicDataQuality,
	"dq":                   TopicDataQuality,
}

// NormalizeTopic maps free-form topic input to a topic ID. Input is trimmed
// and lowercased; known aliases are resolved and anything else is returned
// as is, so an unknown topic simply matches no questions.
func NormalizeTopic(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	if id, ok := topicAliases[t]; ok {
		return id
	}
	return t
}
