package category_test

import (
	"testing"

	"github.com/filadelfiminer-alt/nominanti/internal/domain/category"
	"github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	convey.Convey("Given the category registry", t, func() {
		convey.Convey("Then it should contain the full award list in order", func() {
			all := category.All()
			convey.So(len(all), convey.ShouldEqual, category.Count())
			convey.So(category.Count(), convey.ShouldEqual, 26)
			convey.So(all[0], convey.ShouldEqual, category.Category("Самый популярный пользователь форума года"))
			convey.So(all[len(all)-1], convey.ShouldEqual, category.Category("Розыгрыш года"))
		})

		convey.Convey("Then All should return a copy", func() {
			all := category.All()
			all[0] = "mutated"
			convey.So(category.All()[0], convey.ShouldEqual, category.Category("Самый популярный пользователь форума года"))
		})

		convey.Convey("Then Index should map categories to registry positions", func() {
			convey.So(category.Index("Чаттер года"), convey.ShouldEqual, 4)
			convey.So(category.Index("чаттер года"), convey.ShouldEqual, 4)
			convey.So(category.Index("Неизвестная номинация"), convey.ShouldEqual, -1)
		})
	})
}

func TestExact(t *testing.T) {
	convey.Convey("Given exact matching", t, func() {
		convey.Convey("When the label equals a registry entry", func() {
			c, ok := category.Exact("Чаттер года")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(c, convey.ShouldEqual, category.Category("Чаттер года"))
		})

		convey.Convey("When the label differs only in case and whitespace", func() {
			c, ok := category.Exact("  чатТЕР ГОДА ")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(c, convey.ShouldEqual, category.Category("Чаттер года"))
		})

		convey.Convey("When the label is only a fragment", func() {
			_, ok := category.Exact("Чаттер")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When the label is unknown", func() {
			_, ok := category.Exact("Лучший повар года")
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestFuzzy(t *testing.T) {
	convey.Convey("Given fuzzy matching", t, func() {
		convey.Convey("When one significant token is missing", func() {
			c, ok := category.Fuzzy("Модератор")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(c, convey.ShouldEqual, category.Category("Модератор года"))
		})

		convey.Convey("When the label carries parentheses", func() {
			c, ok := category.Fuzzy("селлер (маркет)")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(c, convey.ShouldEqual, category.Category("Селлер года (маркет)"))
		})

		convey.Convey("When several categories qualify", func() {
			// "года" alone satisfies every two-token category; the first
			// in registry order wins.
			c, ok := category.Fuzzy("итоги года")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(category.Index(c), convey.ShouldEqual, 1)
		})

		convey.Convey("When nothing overlaps", func() {
			_, ok := category.Fuzzy("случайный текст")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When the label is empty", func() {
			_, ok := category.Fuzzy("")
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestNormalize(t *testing.T) {
	convey.Convey("Given normalization", t, func() {
		convey.Convey("When the label matches exactly", func() {
			c, ok := category.Normalize("Бастер года")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(c, convey.ShouldEqual, category.Category("Бастер года"))
		})

		convey.Convey("When only fuzzy matching applies", func() {
			c, ok := category.Normalize("бастер")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(c, convey.ShouldEqual, category.Category("Бастер года"))
		})

		convey.Convey("When neither applies", func() {
			_, ok := category.Normalize("просто текст")
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
