package vision

import "image"

// Направления 8-связной цепочки против часовой стрелки (ось Y вниз):
// 0 — восток, 2 — север, 4 — запад, 6 — юг.
var chainSteps = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

const west = 4

// FindExternalContours возвращает внешние контуры всех самых внешних
// 8-связных областей маски в порядке растрового обхода.
// Области, лежащие в дырах других областей, и сами дыры не возвращаются.
// Каждый контур сжат до точек смены направления цепочки.
func FindExternalContours(m *Mask) [][]image.Point {
	if m.Width <= 0 || m.Height <= 0 {
		return nil
	}

	exterior := exteriorBackground(m)
	visited := make([]bool, len(m.Pix))

	var contours [][]image.Point
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i := y*m.Width + x
			if m.Pix[i] == 0 || visited[i] {
				continue
			}

			// Первый пиксель области в растровом порядке: слева от него фон,
			// окружающий область. Если это внешний фон, область самая внешняя.
			outermost := x == 0 || exterior[i-1]
			markComponent(m, visited, x, y)
			if !outermost {
				continue
			}

			contours = append(contours, compressChain(traceOuterBorder(m, image.Pt(x, y))))
		}
	}

	return contours
}

// exteriorBackground отмечает фон, 4-связно достижимый из-за пределов маски.
func exteriorBackground(m *Mask) []bool {
	exterior := make([]bool, len(m.Pix))
	queue := make([]int, 0, 2*(m.Width+m.Height))

	push := func(x, y int) {
		i := y*m.Width + x
		if m.Pix[i] != 0 || exterior[i] {
			return
		}
		exterior[i] = true
		queue = append(queue, i)
	}

	for x := 0; x < m.Width; x++ {
		push(x, 0)
		push(x, m.Height-1)
	}
	for y := 0; y < m.Height; y++ {
		push(0, y)
		push(m.Width-1, y)
	}

	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := i%m.Width, i/m.Width
		if x > 0 {
			push(x-1, y)
		}
		if x < m.Width-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < m.Height-1 {
			push(x, y+1)
		}
	}

	return exterior
}

// markComponent помечает всю 8-связную область, содержащую (x, y).
func markComponent(m *Mask, visited []bool, x, y int) {
	stack := []image.Point{{x, y}}
	visited[y*m.Width+x] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, step := range chainSteps {
			q := p.Add(step)
			if !m.At(q.X, q.Y) {
				continue
			}
			j := q.Y*m.Width + q.X
			if visited[j] {
				continue
			}
			visited[j] = true
			stack = append(stack, q)
		}
	}
}

// traceOuterBorder обходит внешнюю границу области, начиная с её
// верхнего левого пикселя (алгоритм следования по границе Suzuki–Abe).
func traceOuterBorder(m *Mask, start image.Point) []image.Point {
	// Первый сосед по часовой стрелке, начиная с запада
	first := -1
	for k := 0; k < 8; k++ {
		d := (west - k + 8) % 8
		q := start.Add(chainSteps[d])
		if m.At(q.X, q.Y) {
			first = d
			break
		}
	}
	if first < 0 {
		return []image.Point{start}
	}

	second := start.Add(chainSteps[first])
	prev, cur := second, start

	var border []image.Point
	for {
		back := stepDirection(cur, prev)
		next := prev
		for k := 1; k <= 8; k++ {
			q := cur.Add(chainSteps[(back+k)%8])
			if m.At(q.X, q.Y) {
				next = q
				break
			}
		}

		border = append(border, cur)
		if next == start && cur == second {
			break
		}
		prev, cur = cur, next
	}

	return border
}

// stepDirection возвращает код направления от a к соседнему пикселю b.
func stepDirection(a, b image.Point) int {
	d := b.Sub(a)
	for i, step := range chainSteps {
		if step == d {
			return i
		}
	}
	return 0
}

// compressChain оставляет только точки, в которых меняется направление цепочки.
func compressChain(points []image.Point) []image.Point {
	n := len(points)
	if n < 3 {
		return points
	}

	out := make([]image.Point, 0, n)
	for i, p := range points {
		prev := points[(i-1+n)%n]
		next := points[(i+1)%n]
		if p.Sub(prev) != next.Sub(p) {
			out = append(out, p)
		}
	}

	return out
}
