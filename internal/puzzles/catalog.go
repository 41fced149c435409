package puzzles

import (
	"math/rand"
	"strings"
)

// Catalog is the static set of bug-fix puzzles. Every acceptance check is a
// pattern predicate over the submitted code text, deliberately forgiving:
// the game rewards the obvious fix, not an exact formatting.
var Catalog = []Puzzle{
	{
		ID:          "catalog-1",
		Kind:        KindCatalog,
		Title:       "Toplama Fonksiyonu",
		Description: "Bu fonksiyon iki sayıyı toplamalı. Hatasını düzelt.",
		StarterCode: "function sum(a, b) {\n  return a - b; // HATA\n}\nsum(5,3);",
		Check: func(code string) bool {
			return strings.Contains(code, "return a + b")
		},
		ExpectedOutput: "8",
		Difficulty:     Easy,
		SimplePoints:   1,
	},
	{
		ID:          "catalog-2",
		Kind:        KindCatalog,
		Title:       "Maksimumu Bul",
		Description: "max(a,b) büyük olan sayıyı döndürmeli.",
		StarterCode: "function max(a, b) {\n  if (a < b) return a; // HATA\n  return b;\n}\nmax(5,9);",
		Check: func(code string) bool {
			return strings.Contains(code, "if (a > b)") &&
				strings.Contains(code, "return a") &&
				strings.Contains(code, "return b")
		},
		ExpectedOutput: "9",
		Difficulty:     Easy,
		SimplePoints:   1,
	},
	{
		ID:          "catalog-3",
		Kind:        KindCatalog,
		Title:       "String'i Ters Çevir",
		Description: "reverse(str) fonksiyonu verilen string'i ters döndürmeli.",
		StarterCode: "function reverse(str) {\n  return str; // HATA\n}\nreverse(\"abc\");",
		Check: func(code string) bool {
			return strings.Contains(code, "split") &&
				strings.Contains(code, "reverse") &&
				strings.Contains(code, "join")
		},
		ExpectedOutput: "cba",
		Difficulty:     Easy,
		SimplePoints:   1,
	},
	{
		ID:          "catalog-4",
		Kind:        KindCatalog,
		Title:       "Asal Sayı Kontrolü",
		Description: "isPrime(n) fonksiyonu asal sayıları doğru tespit etmeli.",
		StarterCode: "function isPrime(n) {\n  return false; // HATA\n}\nisPrime(7);",
		Check: func(code string) bool {
			return strings.Contains(code, "for") &&
				strings.Contains(code, "%") &&
				strings.Contains(code, "return true")
		},
		ExpectedOutput: "true",
		Difficulty:     Medium,
		SimplePoints:   2,
	},
	{
		ID:          "catalog-5",
		Kind:        KindCatalog,
		Title:       "Array Toplamı",
		Description: "Tüm sayıları toplayan bir fonksiyon yaz.",
		StarterCode: "function total(arr) {\n  return 0; // HATA\n}\ntotal([1,2,3,4]);",
		Check: func(code string) bool {
			return strings.Contains(code, "reduce") ||
				strings.Contains(code, "sum") ||
				strings.Contains(code, "+=")
		},
		ExpectedOutput: "10",
		Difficulty:     Easy,
		SimplePoints:   1,
	},
	{
		ID:          "catalog-6",
		Kind:        KindCatalog,
		Title:       "En Büyük Sayı",
		Description: "Array içindeki en büyük sayıyı döndürmelidir.",
		StarterCode: "function maxOf(arr) {\n  return arr[0]; // HATA\n}\nmaxOf([3,8,2]);",
		Check: func(code string) bool {
			return strings.Contains(code, "Math.max")
		},
		ExpectedOutput: "8",
		Difficulty:     Medium,
		SimplePoints:   2,
	},
	{
		ID:          "catalog-7",
		Kind:        KindCatalog,
		Title:       "Fibonacci",
		Description: "n'inci Fibonacci sayısını döndürmelidir (fib(6) = 8).",
		StarterCode: "function fib(n) {\n  return 1; // HATA\n}\nfib(6);",
		Check: func(code string) bool {
			return strings.Contains(code, "fib(") ||
				(strings.Contains(code, "for") && strings.Contains(code, "n - 1"))
		},
		ExpectedOutput: "8",
		Difficulty:     Hard,
		SimplePoints:   3,
	},
	{
		ID:          "catalog-8",
		Kind:        KindCatalog,
		Title:       "Çift Sayı Filtresi",
		Description: "Sadece çift sayıları döndürmeli.",
		StarterCode: "function evens(arr) {\n  return arr.filter(n => n % 2 === 1); // HATA\n}\nevens([1,2,3,4]);",
		Check: func(code string) bool {
			return strings.Contains(code, "% 2 === 0") ||
				strings.Contains(code, "% 2 == 0")
		},
		ExpectedOutput: "[2,4]",
		Difficulty:     Easy,
		SimplePoints:   1,
	},
	{
		ID:          "catalog-9",
		Kind:        KindCatalog,
		Title:       "Palindrom Kontrolü",
		Description: "isPalindrome(str) kelime tersten de aynıysa true döndürmeli.",
		StarterCode: "function isPalindrome(str) {\n  return str === str; // HATA\n}\nisPalindrome(\"kayak\");",
		Check: func(code string) bool {
			return strings.Contains(code, "split") &&
				strings.Contains(code, "reverse") &&
				strings.Contains(code, "join")
		},
		ExpectedOutput: "true",
		Difficulty:     Medium,
		SimplePoints:   2,
	},
	{
		ID:          "catalog-10",
		Kind:        KindCatalog,
		Title:       "Faktöriyel",
		Description: "factorial(n) çarpımsal olarak hesaplanmalı (factorial(5) = 120).",
		StarterCode: "function factorial(n) {\n  return n + factorial(n - 1); // HATA\n}\nfactorial(5);",
		Check: func(code string) bool {
			return strings.Contains(code, "n * factorial(n - 1)") ||
				(strings.Contains(code, "for") && strings.Contains(code, "*="))
		},
		ExpectedOutput: "120",
		Difficulty:     Hard,
		SimplePoints:   3,
	},
}

// Random picks a uniformly random catalog puzzle, ignoring difficulty. This is
// the generator fallback: it must always succeed.
func Random() Puzzle {
	return Catalog[rand.Intn(len(Catalog))]
}

// RandomByDifficulty narrows to a difficulty tier; falls back to the whole
// catalog when the tier is empty.
func RandomByDifficulty(d Difficulty) Puzzle {
	var tier []Puzzle
	for _, p := range Catalog {
		if p.Difficulty == d {
			tier = append(tier, p)
		}
	}
	if len(tier) == 0 {
		return Random()
	}
	return tier[rand.Intn(len(tier))]
}

// ByID returns the catalog puzzle with the given id.
func ByID(id string) (Puzzle, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Puzzle{}, false
}
