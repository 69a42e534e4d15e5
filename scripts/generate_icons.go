//go:build ignore

// Скрипт для генерации иконок трея.
// Запуск: go run scripts/generate_icons.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	icons := []struct {
		name  string
		color color.RGBA
	}{
		{"tray-icon-dark.png", color.RGBA{40, 40, 40, 255}},    // Для светлой панели
		{"tray-icon-light.png", color.RGBA{235, 235, 235, 255}}, // Для тёмной панели
	}

	for _, icon := range icons {
		path := filepath.Join(dir, icon.name)
		if err := generateIcon(path, icon.color); err != nil {
			log.Fatalf("Ошибка генерации %s: %v", icon.name, err)
		}
		log.Printf("Создан: %s", path)
	}
}

// generateIcon рисует облачко чата: скруглённый прямоугольник с хвостиком.
func generateIcon(path string, c color.RGBA) error {
	const size = 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	left, top, right, bottom := 8, 10, 56, 44
	radius := 10

	inside := func(x, y int) bool {
		if x < left || x > right || y < top || y > bottom {
			return false
		}
		cx, cy := x, y
		switch {
		case x < left+radius:
			cx = left + radius
		case x > right-radius:
			cx = right - radius
		}
		switch {
		case y < top+radius:
			cy = top + radius
		case y > bottom-radius:
			cy = bottom - radius
		}
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= radius*radius
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if inside(x, y) {
				img.Set(x, y, c)
			}
		}
	}

	// Хвостик облачка
	for y := bottom; y < bottom+10; y++ {
		for x := 18; x <= 18+(bottom+10-y); x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
