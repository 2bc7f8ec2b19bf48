package model

import "fmt"

// Fruit identifies an entry in the compiled-in produce catalog.
type Fruit string

// Catalog categories.
const (
	CategoryVegetable = "VEGETABLE"
	CategoryFruit     = "FRUIT"
)

const (
	// Vegetables
	FruitAlcachofa       Fruit = "ALCACHOFA"
	FruitEsparrago       Fruit = "ESPARRAGO"
	FruitLechuga         Fruit = "LECHUGA"
	FruitTomate          Fruit = "TOMATE"
	FruitZapalloItaliano Fruit = "ZAPALLO_ITALIANO"
	FruitBrocoli         Fruit = "BROCOLI"
	FruitZapallo         Fruit = "ZAPALLO"
	FruitColiflor        Fruit = "COLIFLOR"
	FruitRepollo         Fruit = "REPOLLO"

	// Fruits
	FruitFrutilla  Fruit = "FRUTILLA"
	FruitNispero   Fruit = "NISPERO"
	FruitDurazno   Fruit = "DURAZNO"
	FruitMelon     Fruit = "MELON"
	FruitSandia    Fruit = "SANDIA"
	FruitManzana   Fruit = "MANZANA"
	FruitPera      Fruit = "PERA"
	FruitUvas      Fruit = "UVAS"
	FruitKiwi      Fruit = "KIWI"
	FruitMandarina Fruit = "MANDARINA"
	FruitNaranja   Fruit = "NARANJA"
)

// FruitInfo describes a catalog entry for listings and responses.
type FruitInfo struct {
	Type     Fruit  `json:"type"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// catalog is the fixed weekly produce offering. Order is the display order.
var catalog = []FruitInfo{
	{FruitAlcachofa, "Alcachofa", CategoryVegetable},
	{FruitEsparrago, "Espárrago", CategoryVegetable},
	{FruitLechuga, "Lechuga", CategoryVegetable},
	{FruitTomate, "Tomate", CategoryVegetable},
	{FruitZapalloItaliano, "Zapallo italiano", CategoryVegetable},
	{FruitBrocoli, "Brócoli", CategoryVegetable},
	{FruitZapallo, "Zapallo", CategoryVegetable},
	{FruitColiflor, "Coliflor", CategoryVegetable},
	{FruitRepollo, "Repollo", CategoryVegetable},
	{FruitFrutilla, "Frutilla", CategoryFruit},
	{FruitNispero, "Níspero", CategoryFruit},
	{FruitDurazno, "Durazno", CategoryFruit},
	{FruitMelon, "Melón", CategoryFruit},
	{FruitSandia, "Sandía", CategoryFruit},
	{FruitManzana, "Manzana", CategoryFruit},
	{FruitPera, "Pera", CategoryFruit},
	{FruitUvas, "Uvas", CategoryFruit},
	{FruitKiwi, "Kiwi", CategoryFruit},
	{FruitMandarina, "Mandarina", CategoryFruit},
	{FruitNaranja, "Naranja", CategoryFruit},
}

var catalogByType = func() map[Fruit]FruitInfo {
	m := make(map[Fruit]FruitInfo, len(catalog))
	for _, f := range catalog {
		m[f.Type] = f
	}
	return m
}()

// Catalog returns the full produce catalog in display order.
func Catalog() []FruitInfo {
	out := make([]FruitInfo, len(catalog))
	copy(out, catalog)
	return out
}

// ParseFruit converts a string into a known catalog entry.
func ParseFruit(s string) (Fruit, error) {
	f := Fruit(s)
	if _, ok := catalogByType[f]; !ok {
		return "", fmt.Errorf("unknown fruit %q", s)
	}
	return f, nil
}

// DisplayName returns the human-readable name, or the raw identifier for
// values outside the catalog.
func (f Fruit) DisplayName() string {
	if info, ok := catalogByType[f]; ok {
		return info.Name
	}
	return string(f)
}

// Info returns the catalog entry for the fruit.
func (f Fruit) Info() FruitInfo {
	return catalogByType[f]
}
