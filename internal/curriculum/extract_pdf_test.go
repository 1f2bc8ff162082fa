package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextFromStream(t *testing.T) {
	t.Parallel()

	t.Run("tj operators", func(t *testing.T) {
		t.Parallel()
		stream := []byte("BT\n(1. Matanaliz 3 108) Tj\nET")
		assert.Equal(t, "1. Matanaliz 3 108", extractTextFromStream(stream))
	})

	t.Run("td starts a new line", func(t *testing.T) {
		t.Parallel()
		stream := []byte("(first) Tj\n0 -14 Td\n(second) Tj")
		assert.Equal(t, "first\nsecond", extractTextFromStream(stream))
	})

	t.Run("tj array form", func(t *testing.T) {
		t.Parallel()
		stream := []byte("[(Mashinnoe) -250 ( obuchenie 6 216)] TJ")
		assert.Equal(t, "Mashinnoe obuchenie 6 216", extractTextFromStream(stream))
	})

	t.Run("quote operator breaks line", func(t *testing.T) {
		t.Parallel()
		stream := []byte("(first) Tj\n(second) '")
		assert.Equal(t, "first\nsecond", extractTextFromStream(stream))
	})

	t.Run("non-text operators ignored", func(t *testing.T) {
		t.Parallel()
		stream := []byte("q\n1 0 0 1 50 750 cm\nQ")
		assert.Empty(t, extractTextFromStream(stream))
	})
}

func TestDecodePDFString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", decodePDFString([]byte("plain")))
	assert.Equal(t, "(nested)", decodePDFString([]byte(`\(nested\)`)))
	assert.Equal(t, "a\tb", decodePDFString([]byte(`a\tb`)))
	assert.Equal(t, "a b", decodePDFString([]byte(`a\040b`)), "octal escape")
	assert.Equal(t, `a\`, decodePDFString([]byte(`a\\`)))
}

func TestCleanPDFText(t *testing.T) {
	t.Parallel()

	in := "  1.   Matanaliz   3  108  \n\n\nVtoraya    stroka\n"
	assert.Equal(t, "1. Matanaliz 3 108\nVtoraya stroka", cleanPDFText(in))
}
