package menu

var pizzaPrices = map[ItemSize]float64{
	SizeSmall:  12.99,
	SizeMedium: 14.99,
	SizeLarge:  16.99,
	SizeXLarge: 18.99,
}

var toppingPrices = map[ItemSize]float64{
	SizeSmall:  0.50,
	SizeMedium: 1.00,
	SizeLarge:  1.50,
	SizeXLarge: 2.00,
}

var saladPrices = map[ItemSize]float64{
	SizeRegular: 5.00,
	SizeLarge:   6.50,
}

var dressingPrices = map[ItemSize]float64{
	SizeRegular: 1.50,
	SizeLarge:   2.00,
}

// Items is the full seeded menu.
var Items = []Item{
	{
		ID:   "big-bear-special",
		Name: "The Big Bear Special",
		Type: TypePizza,
		Desc: "A pizza only an actual bear would want to eat. We add a couple of whole, raw salmon on a pizza with various other toppings of dubious quality and freshness.",
		Price: map[ItemSize]float64{
			SizeSmall:  12.99,
			SizeMedium: 14.99,
			SizeLarge:  16.99,
			SizeXLarge: 18.99,
		},
	},
	{
		ID:   "cheese-pizza",
		Name: "Cheese Pizza (a.k.a The Commando)",
		Type: TypePizza,
		Desc: "An unencumbered pizza with nothing but cheese.",
		Price: map[ItemSize]float64{
			SizeSmall:  9.99,
			SizeMedium: 11.99,
			SizeLarge:  13.99,
			SizeXLarge: 15.99,
		},
	},
	{
		ID:    "combination-pizza",
		Name:  "Combination Pizza",
		Type:  TypePizza,
		Desc:  "A pizza with pepperoni, italian sausage, mushrooms, olives, and green peppers - for those needing a low-risk or unimaginative pizza option.",
		Price: pizzaPrices,
	},
	{
		ID:    "the-node",
		Name:  "The Node",
		Type:  TypePizza,
		Desc:  "An asynchronous, event-driven pizza with chicken sausage, bacon, tomatoes, and fresh basil - for anyone wanting a pizza that runs on the front and back end.",
		Price: pizzaPrices,
	},
	{
		ID:    "the-full-stack",
		Name:  "The Full Stack",
		Type:  TypePizza,
		Desc:  "A fully-capable, well-rounded pizza with pepperoni, bacon, italian sausage, mushrooms, black olives, roasted garlic, spinach, pine nuts, jalepenos, and fresh basil.",
		Price: pizzaPrices,
	},
	{
		ID:    "build-your-own",
		Name:  "The Proprietary (build your own)",
		Type:  TypePizza,
		Desc:  "This pizza starts with cheese and then makes your every wish its command.",
		Price: pizzaPrices,
	},

	{ID: "pepperoni-topping", Name: "Pepperoni", Type: TypeTopping, Price: toppingPrices},
	{ID: "italian-sausage-topping", Name: "Italian Sausage", Type: TypeTopping, Price: toppingPrices},
	{ID: "bacon-topping", Name: "Bacon", Type: TypeTopping, Price: toppingPrices},
	{ID: "mushroom-topping", Name: "Mushrooms", Type: TypeTopping, Price: toppingPrices},
	{ID: "black-olive-topping", Name: "Black Olives", Type: TypeTopping, Price: toppingPrices},
	{ID: "roasted-garlic-topping", Name: "Roasted Garlic", Type: TypeTopping, Price: toppingPrices},
	{ID: "tomato-topping", Name: "Tomatoes", Type: TypeTopping, Price: toppingPrices},
	{ID: "spinach-topping", Name: "Spinach", Type: TypeTopping, Price: toppingPrices},
	{ID: "jalepeno-topping", Name: "Jalepenos", Type: TypeTopping, Price: toppingPrices},
	{ID: "pine-nut-topping", Name: "Pine Nuts", Type: TypeTopping, Price: toppingPrices},
	{ID: "fresh-basil-topping", Name: "Fresh Basil", Type: TypeTopping, Price: toppingPrices},

	{ID: "garden-salad", Name: "Garden Salad", Type: TypeSalad, Price: saladPrices},
	{ID: "greek-salad", Name: "Greek Salad", Type: TypeSalad, Price: saladPrices},
	{ID: "caesar-salad", Name: "Caesar Salad", Type: TypeSalad, Price: saladPrices},
	{ID: "spinach-salad", Name: "Spinach Salad", Type: TypeSalad, Price: saladPrices},

	{ID: "house-dressing", Name: "House Dressing", Type: TypeDressing, Price: dressingPrices},
	{ID: "caesar-dressing", Name: "Caesar Dressing", Type: TypeDressing, Price: dressingPrices},
	{ID: "blue-cheese-dressing", Name: "Blue Cheese Dressing", Type: TypeDressing, Price: dressingPrices},
	{ID: "ranch-dressing", Name: "Ranch Dressing", Type: TypeDressing, Price: dressingPrices},

	{ID: "san-pellegrino", Name: "San Pellegrino", Type: TypeBeverage, Price: map[ItemSize]float64{SizeRegular: 2.50}},
	{ID: "water", Name: "Water", Type: TypeBeverage, Price: map[ItemSize]float64{SizeRegular: 1.00}},
	{ID: "cola", Name: "Cola", Type: TypeBeverage, Price: map[ItemSize]float64{SizeRegular: 1.50}},
	{ID: "pale-ale", Name: "Sierra Nevada Pale Ale", Type: TypeBeverage, Price: map[ItemSize]float64{SizeRegular: 2.00}},
}
