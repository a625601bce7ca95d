package evals_test

import (
	"github.com/prashantgupta17/evaltemplates/evals"
	"github.com/prashantgupta17/evaltemplates/templates"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SnapToRail", func() {
	relevancy := templates.RAGRelevancyPromptRailsMap.Rails()
	toxicity := templates.ToxicityPromptRailsMap.Rails()

	DescribeTable("snapping model answers",
		func(raw string, rails []string, expected string) {
			Expect(evals.SnapToRail(raw, rails)).To(Equal(expected))
		},
		Entry("exact rail", "relevant", relevancy, "relevant"),
		Entry("case-insensitive", "  IRRELEVANT\n", relevancy, "irrelevant"),
		Entry("longer rail wins over its substring", "irrelevant", relevancy, "irrelevant"),
		Entry("hyphenated rail", "non-toxic", toxicity, "non-toxic"),
		Entry("rail inside a sentence", "The answer is: toxic.", toxicity, "toxic"),
		Entry("both rails present", "relevant or irrelevant", relevancy, templates.NotParsable),
		Entry("no rail present", "I cannot tell", relevancy, templates.NotParsable),
		Entry("empty answer", "", relevancy, templates.NotParsable),
		Entry("same rail repeated", "factual, factual", templates.HallucinationPromptRailsMap.Rails(), "factual"),
		Entry("duplicate rails are collapsed", "yes", []string{"YES", "yes", "no"}, "yes"),
		Entry("no rails", "anything", []string{}, templates.NotParsable),
	)

	It("returns the lower-cased rail", func() {
		Expect(evals.SnapToRail("Readable", []string{"Readable", "Unreadable"})).To(Equal("readable"))
	})
})
