package evals

import (
	"context"
	"fmt"

	"github.com/prashantgupta17/evaltemplates/dataset"
	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/prashantgupta17/evaltemplates/templates"
)

// documentContentKey is the key read from document objects in the documents column.
const documentContentKey = "document.content"

// RunRelevanceEval grades every retrieved document of every record against the
// record's query with the RAG relevancy template. The result has one slice per
// record and one entry per document: true relevant, false irrelevant, nil when
// the answer could not be parsed.
func RunRelevanceEval(ctx context.Context, model llm.Model, ds *dataset.Dataset, opts ...Option) ([][]*bool, error) {
	o := newOptions(opts)

	type position struct{ record, document int }
	var pairs []dataset.Record
	var positions []position
	out := make([][]*bool, ds.Len())

	for i, record := range ds.Records {
		query, ok := record[o.queryColumn]
		if !ok {
			return nil, fmt.Errorf("record %d: missing query column %q", i, o.queryColumn)
		}
		documents, err := documentTexts(record[o.documentsColumn])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out[i] = make([]*bool, len(documents))
		for j, doc := range documents {
			pairs = append(pairs, dataset.Record{"query": query, "reference": doc})
			positions = append(positions, position{record: i, document: j})
		}
	}

	results, err := Classify(ctx, model, dataset.New(pairs...),
		templates.NewPromptTemplate(templates.RAGRelevancyPromptTemplateStr),
		templates.RAGRelevancyPromptRailsMap.Rails(), opts...)
	if err != nil {
		return nil, err
	}

	binary := BinaryLabels(results, templates.RAGRelevancyPromptRailsMap)
	for k, pos := range positions {
		out[pos.record][pos.document] = binary[k]
	}
	return out, nil
}

// documentTexts accepts a list of strings or a list of objects carrying document.content.
func documentTexts(v any) ([]string, error) {
	switch docs := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return docs, nil
	case []any:
		texts := make([]string, 0, len(docs))
		for j, d := range docs {
			switch doc := d.(type) {
			case string:
				texts = append(texts, doc)
			case map[string]any:
				content, ok := doc[documentContentKey]
				if !ok {
					return nil, fmt.Errorf("document %d has no %q", j, documentContentKey)
				}
				texts = append(texts, fmt.Sprint(content))
			default:
				return nil, fmt.Errorf("document %d has unsupported type %T", j, d)
			}
		}
		return texts, nil
	default:
		return nil, fmt.Errorf("unsupported documents type %T", v)
	}
}
