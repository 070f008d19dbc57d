package ai_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/fx/fxtest"

	"github.com/motuslabs/rehab/ai"
)

var _ = Describe("NewGenerator", func() {
	It("returns an unavailable generator when no key is configured", func() {
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		generator, err := ai.NewGenerator(&ai.Config{}, lifecycle)
		Expect(err).ToNot(HaveOccurred())

		_, err = generator.GenerateReport(context.Background(), "anything")
		Expect(err).To(MatchError(ai.ErrUnavailable))
	})
})

var _ = Describe("Prompts", func() {
	csv := "Week,Phase\nW1,P1\n"

	Describe("AnalysisPrompt", func() {
		It("embeds the CSV verbatim after the script", func() {
			prompt := ai.AnalysisPrompt(csv)
			Expect(prompt).To(HaveSuffix(csv))
		})

		It("keeps the required output sections in the script", func() {
			prompt := ai.AnalysisPrompt(csv)
			Expect(prompt).To(ContainSubstring("SECTION B."))
			Expect(prompt).To(ContainSubstring("SECTION C."))
			Expect(prompt).To(ContainSubstring("SECTION D."))
			Expect(prompt).To(ContainSubstring("Do NOT reject the input"))
		})
	})

	Describe("QuestionPrompt", func() {
		It("grounds the question in the same CSV", func() {
			prompt := ai.QuestionPrompt(csv, "Is grip force improving?")
			Expect(prompt).To(ContainSubstring("Is grip force improving?"))
			Expect(prompt).To(HaveSuffix(csv))
			Expect(strings.Index(prompt, "QUESTION:")).To(BeNumerically("<", strings.Index(prompt, "INPUT CSV DATA")))
		})
	})
})
