package postprocess_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mudler/dikte/pkg/postprocess"
)

var _ = Describe("Process", func() {
	Context("question particles", func() {
		It("appends a question mark after a trailing particle", func() {
			Expect(postprocess.Process("Bu doğru mu")).To(Equal("Bu doğru mu?"))
			Expect(postprocess.Process("Gelecek misiniz")).To(Equal("Gelecek misiniz?"))
			Expect(postprocess.Process("Hazır mısın")).To(Equal("Hazır mısın?"))
		})

		It("does not duplicate an existing question mark", func() {
			Expect(postprocess.Process("Bu doğru mu?")).To(Equal("Bu doğru mu?"))
		})

		It("replaces a trailing period", func() {
			Expect(postprocess.Process("Bu doğru mu.")).To(Equal("Bu doğru mu?"))
		})

		It("replaces other trailing punctuation", func() {
			Expect(postprocess.Process("Bu doğru mu!")).To(Equal("Bu doğru mu?"))
			Expect(postprocess.Process("Geldiniz mi,")).To(Equal("Geldiniz mi?"))
		})

		It("requires the particle to be a standalone word", func() {
			// "mu" inside a word must not trigger
			Expect(postprocess.Process("Muammer geldi")).To(Equal("Muammer geldi"))
			Expect(postprocess.Process("Mumya bulundu")).To(Equal("Mumya bulundu"))
			Expect(postprocess.Process("kutu")).To(Equal("kutu"))
		})

		It("prefers the longest matching particle", func() {
			// "mısınız" is itself a standalone token; the shorter
			// "mı" inside it must not be what matches.
			Expect(postprocess.Process("Hazır mısınız")).To(Equal("Hazır mısınız?"))
		})

		It("accepts a bare particle at the start of the string", func() {
			Expect(postprocess.Process("mı")).To(Equal("mı?"))
		})

		It("matches particles case-insensitively", func() {
			Expect(postprocess.Process("BU DOĞRU MU")).To(Equal("BU DOĞRU MU?"))
		})

		It("matches particles spelled with the dotted capital İ", func() {
			// İ folds to a plain dotted i here, so all-caps
			// particles with İ still count as questions.
			Expect(postprocess.Process("GELECEK MİSİNİZ")).To(Equal("GELECEK MİSİNİZ?"))
			Expect(postprocess.Process("HAZIR MISINIZ")).To(Equal("HAZIR MISINIZ?"))
		})
	})

	Context("substitutions", func() {
		It("fixes known garbled words", func() {
			Expect(postprocess.Process("göğlen hatalar")).To(Equal("görülen hatalar"))
			Expect(postprocess.Process("göğünmeyen sorun")).To(Equal("görünmeyen sorun"))
			Expect(postprocess.Process("bilepini paylaştı")).To(Equal("deneyimini paylaştı"))
		})

		It("replaces every occurrence", func() {
			Expect(postprocess.Process("göğlen ve göğlen")).To(Equal("görülen ve görülen"))
		})
	})

	Context("proper nouns", func() {
		It("corrects known misheard names", func() {
			Expect(postprocess.Process("Peter Dubek demiştir ki")).To(Equal("Peter Drucker demiştir ki"))
			Expect(postprocess.Process("Aydigur Şahina göre")).To(Equal("Edgar Schein göre"))
		})
	})

	Context("Turkish characters", func() {
		It("fixes wrong-diacritic spellings", func() {
			Expect(postprocess.Process("hültür değişimi")).To(Equal("kültür değişimi"))
			Expect(postprocess.Process("şirket kültüğü")).To(Equal("şirket kültürü"))
		})
	})

	Context("pass composition", func() {
		It("applies all four passes in order", func() {
			in := "Peter Dubek hültür değişimi hakkında mı."
			Expect(postprocess.Process(in)).To(Equal("Peter Drucker kültür değişimi hakkında mı?"))
		})

		It("is idempotent on already-clean text", func() {
			clean := "Peter Drucker kültür değişimi hakkında mı?"
			Expect(postprocess.Process(clean)).To(Equal(clean))
		})

		It("never fails on empty input", func() {
			Expect(postprocess.Process("")).To(Equal(""))
		})
	})
})
