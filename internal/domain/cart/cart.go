package cart

import "sort"

// 注文前のカート1行分
type Line struct {
	ProductID int64
	Quantity  int64
}

// Cart は productID -> quantity の不変スナップショット。
// 同じ商品を2回追加しても行は1つにまとまる。
type Cart struct {
	quantities map[int64]int64
}

// 空のカート
func New() Cart {
	return Cart{quantities: map[int64]int64{}}
}

// FromLines は入力行からカートを作る。重複IDは数量を合算。
// 数量0以下の行はここでは落とさない（バリデーションで弾く）。
func FromLines(lines []Line) Cart {
	c := New()
	for _, l := range lines {
		c = c.Add(l.ProductID, l.Quantity)
	}
	return c
}

// Add は数量を加算した新しいスナップショットを返す。
func (c Cart) Add(productID int64, quantity int64) Cart {
	next := c.clone()
	next.quantities[productID] += quantity
	return next
}

// WithQuantity は数量を置き換えた新しいスナップショットを返す。
func (c Cart) WithQuantity(productID int64, quantity int64) Cart {
	next := c.clone()
	next.quantities[productID] = quantity
	return next
}

// Remove は商品を取り除いた新しいスナップショットを返す。
func (c Cart) Remove(productID int64) Cart {
	next := c.clone()
	delete(next.quantities, productID)
	return next
}

func (c Cart) Quantity(productID int64) int64 {
	return c.quantities[productID]
}

func (c Cart) Len() int {
	return len(c.quantities)
}

func (c Cart) IsEmpty() bool {
	return len(c.quantities) == 0
}

// Lines はproductID昇順の行を返す。
func (c Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.quantities))
	for id, qty := range c.quantities {
		lines = append(lines, Line{ProductID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

func (c Cart) clone() Cart {
	next := Cart{quantities: make(map[int64]int64, len(c.quantities)+1)}
	for id, qty := range c.quantities {
		next.quantities[id] = qty
	}
	return next
}
