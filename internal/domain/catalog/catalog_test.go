package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/examprep/internal/domain/catalog"
	"github.com/okian/examprep/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

const minimalDocument = `
topics:
  - id: probability
    description: "Custom probability"
    samples:
      - id: p-1
        question: "Q"
        data: {red: 1, blue: 1}
        expected: "1/2"
  - id: coordinate-geometry
    description: "Custom geometry"
    samples:
      - id: g-1
        question: "Q"
        data: {x1: 0, y1: 0, x2: 3, y2: 4}
        expected: "5"
  - id: calculus
    description: "Custom calculus"
    samples:
      - id: c-1
        question: "Q"
        data: {a: 1, b: 1, c: 1}
        expected: "f'(x) = 2x + 1"
  - id: matrices
    description: "Custom matrices"
    samples:
      - id: m-1
        question: "Q"
        data: {A: [[1, 0], [0, 1]], B: [[1, 0], [0, 1]]}
        expected: "[[1, 0], [0, 1]]"
`

func TestCatalog_Default(t *testing.T) {
	Convey("Given the built-in catalog", t, func() {
		c, err := catalog.New()
		So(err, ShouldBeNil)

		Convey("When listing topics", func() {
			topics := c.ListTopics()

			Convey("Then exactly the four known topics should be returned in order", func() {
				So(topics, ShouldResemble, types.Topics())
				So(c.ListTopics(), ShouldResemble, topics)
			})
		})

		Convey("When getting each known topic", func() {
			Convey("Then each should have a description and samples", func() {
				for _, topic := range types.Topics() {
					content, err := c.GetTopic(topic)
					So(err, ShouldBeNil)
					So(content.Description, ShouldNotBeEmpty)
					So(content.Samples, ShouldNotBeEmpty)
				}
			})
		})

		Convey("When getting the probability topic", func() {
			content, err := c.GetTopic(types.Probability)

			Convey("Then the fixture should be reproduced verbatim", func() {
				So(err, ShouldBeNil)
				So(content.Description, ShouldEqual, "Basics: equally likely outcomes, simple probabilities, complementary events.")
				So(content.Samples, ShouldHaveLength, 1)
				s := content.Samples[0]
				So(s.ID, ShouldEqual, "prob-1")
				So(s.Question, ShouldEqual, "A bag contains 3 red and 2 blue balls. What is P(red)?")
				So(s.Data["red"], ShouldEqual, 3)
				So(s.Data["blue"], ShouldEqual, 2)
				So(s.Expected, ShouldEqual, "3/5")
			})
		})

		Convey("When getting the remaining fixtures", func() {
			geo, err := c.GetTopic(types.CoordinateGeometry)
			So(err, ShouldBeNil)
			calc, err := c.GetTopic(types.Calculus)
			So(err, ShouldBeNil)
			mat, err := c.GetTopic(types.Matrices)
			So(err, ShouldBeNil)

			Convey("Then ids, data and expected answers should match", func() {
				So(geo.Samples[0].ID, ShouldEqual, "coord-1")
				So(geo.Samples[0].Data, ShouldResemble, types.Payload{"x1": 1, "y1": 2, "x2": 4, "y2": 6})
				So(geo.Samples[0].Expected, ShouldEqual, "5")

				So(calc.Samples[0].ID, ShouldEqual, "calc-1")
				So(calc.Samples[0].Data, ShouldResemble, types.Payload{"a": 2, "b": 3, "c": 1})
				So(calc.Samples[0].Expected, ShouldEqual, "f'(x) = 4x + 3")

				So(mat.Samples[0].ID, ShouldEqual, "mat-1")
				So(mat.Samples[0].Question, ShouldEqual, "Compute A·B where A=[[1,2],[3,4]], B=[[2,0],[1,2]].")
				So(mat.Samples[0].Data["A"], ShouldResemble, []any{[]any{1, 2}, []any{3, 4}})
				So(mat.Samples[0].Data["B"], ShouldResemble, []any{[]any{2, 0}, []any{1, 2}})
				So(mat.Samples[0].Expected, ShouldEqual, "[[4, 4], [10, 8]]")
			})
		})

		Convey("When getting a topic outside the enumeration", func() {
			_, err := c.GetTopic(types.Topic(77))

			Convey("Then it should fail with ErrNotFound", func() {
				So(errors.Is(err, catalog.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When looking up by identifier", func() {
			topic, content, err := c.Lookup("calculus")

			Convey("Then the topic and content should be resolved", func() {
				So(err, ShouldBeNil)
				So(topic, ShouldEqual, types.Calculus)
				So(content.Description, ShouldEqual, "Derivatives and basic integrals.")
			})
		})

		Convey("When looking up an unknown identifier", func() {
			_, _, err := c.Lookup("unknown")

			Convey("Then it should fail with ErrNotFound", func() {
				So(errors.Is(err, catalog.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When fetching a sample by id", func() {
			s, err := c.Sample(types.Calculus, "calc-1")
			So(err, ShouldBeNil)
			_, missing := c.Sample(types.Calculus, "calc-9")

			Convey("Then known ids resolve and unknown ids fail", func() {
				So(s.Expected, ShouldEqual, "f'(x) = 4x + 3")
				So(errors.Is(missing, catalog.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When counting samples", func() {
			Convey("Then every fixture should be counted", func() {
				So(c.SampleCount(), ShouldEqual, 4)
			})
		})

		Convey("When a caller mutates returned content", func() {
			content, err := c.GetTopic(types.Matrices)
			So(err, ShouldBeNil)
			content.Samples[0].ID = "changed"
			content.Samples[0].Data["A"].([]any)[0].([]any)[0] = 99
			delete(content.Samples[0].Data, "B")

			Convey("Then the catalog should be unaffected", func() {
				again, err := c.GetTopic(types.Matrices)
				So(err, ShouldBeNil)
				So(again.Samples[0].ID, ShouldEqual, "mat-1")
				So(again.Samples[0].Data["A"], ShouldResemble, []any{[]any{1, 2}, []any{3, 4}})
				So(again.Samples[0].Data, ShouldContainKey, "B")
			})
		})
	})
}

func TestCatalog_Sources(t *testing.T) {
	Convey("Given alternative catalog sources", t, func() {
		Convey("When loading from a reader", func() {
			c, err := catalog.New(catalog.WithReader(strings.NewReader(minimalDocument)))

			Convey("Then the custom content should be served", func() {
				So(err, ShouldBeNil)
				content, err := c.GetTopic(types.Probability)
				So(err, ShouldBeNil)
				So(content.Description, ShouldEqual, "Custom probability")
				So(content.Samples[0].ID, ShouldEqual, "p-1")
			})
		})

		Convey("When loading from a file", func() {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			So(os.WriteFile(path, []byte(minimalDocument), 0o600), ShouldBeNil)
			c, err := catalog.New(catalog.WithFile(path))

			Convey("Then the file content should be served", func() {
				So(err, ShouldBeNil)
				content, err := c.GetTopic(types.Matrices)
				So(err, ShouldBeNil)
				So(content.Description, ShouldEqual, "Custom matrices")
			})
		})

		Convey("When the file does not exist", func() {
			_, err := catalog.New(catalog.WithFile(filepath.Join(t.TempDir(), "missing.yaml")))

			Convey("Then loading should fail", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})

		Convey("When an empty path is given", func() {
			c, err := catalog.New(catalog.WithFile(""))

			Convey("Then the built-in content should be used", func() {
				So(err, ShouldBeNil)
				So(c.SampleCount(), ShouldEqual, 4)
			})
		})
	})
}

func TestCatalog_Invalid(t *testing.T) {
	Convey("Given malformed catalog documents", t, func() {
		cases := map[string]string{
			"empty document": ``,
			"unknown topic": strings.Replace(minimalDocument, "id: matrices", "id: algebra", 1),
			"missing topic": minimalDocument[:strings.Index(minimalDocument, "  - id: matrices")],
			"duplicate topic": minimalDocument + `
  - id: calculus
    description: "again"
    samples:
      - id: c-2
        question: "Q"
        data: {a: 1}
        expected: "x"
`,
			"no samples": strings.Replace(minimalDocument, `    samples:
      - id: m-1
        question: "Q"
        data: {A: [[1, 0], [0, 1]], B: [[1, 0], [0, 1]]}
        expected: "[[1, 0], [0, 1]]"
`, "    samples: []\n", 1),
			"empty sample id":   strings.Replace(minimalDocument, "id: p-1", `id: ""`, 1),
			"duplicate sample":  strings.Replace(minimalDocument, "id: g-1", "id: g-1\n        question: \"Q\"\n        expected: \"5\"\n      - id: g-1", 1),
			"unknown field":     strings.Replace(minimalDocument, `expected: "5"`, "expected: \"5\"\n        answer: \"5\"", 1),
		}

		for name, doc := range cases {
			Convey("When loading a document with "+name, func() {
				_, err := catalog.New(catalog.WithReader(strings.NewReader(doc)))

				Convey("Then it should fail with ErrInvalidCatalog", func() {
					So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
				})
			})
		}
	})
}

func TestMustDefault(t *testing.T) {
	Convey("Given the built-in catalog document", t, func() {
		Convey("Then MustDefault should not panic", func() {
			So(func() { catalog.MustDefault() }, ShouldNotPanic)
		})
	})
}
