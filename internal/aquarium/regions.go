package aquarium

import (
	"fmt"

	"github.com/gammazero/deque"
)

// RegionsFromSeparators labels the connected components of a grid whose
// regions are described by separator flags instead of explicit ids.
// walls[y*(width-1)+x] splits (x, y) from (x+1, y); floors[y*width+x]
// splits (x, y) from (x, y+1). Ids are assigned in scan order starting
// from 0.
//
// The fill runs over an explicit work queue, so region size is bounded
// by the heap and not the call stack.
func RegionsFromSeparators(width, height int, walls, floors []bool) ([]int, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("board dimensions must be positive, got %dx%d", width, height)
	}
	if len(walls) != (width-1)*height {
		return nil, fmt.Errorf("want %d wall flags, got %d", (width-1)*height, len(walls))
	}
	if len(floors) != width*(height-1) {
		return nil, fmt.Errorf("want %d floor flags, got %d", width*(height-1), len(floors))
	}

	const unlabeled = -1
	regions := make([]int, width*height)
	for i := range regions {
		regions[i] = unlabeled
	}

	var (
		next int
		todo deque.Deque[int]
	)
	for start := range regions {
		if regions[start] != unlabeled {
			continue
		}
		id := next
		next++
		regions[start] = id
		todo.PushBack(start)
		for todo.Len() > 0 {
			i := todo.PopFront()
			x, y := i%width, i/width
			if x+1 < width && !walls[y*(width-1)+x] && regions[i+1] == unlabeled {
				regions[i+1] = id
				todo.PushBack(i + 1)
			}
			if x > 0 && !walls[y*(width-1)+x-1] && regions[i-1] == unlabeled {
				regions[i-1] = id
				todo.PushBack(i - 1)
			}
			if y+1 < height && !floors[y*width+x] && regions[i+width] == unlabeled {
				regions[i+width] = id
				todo.PushBack(i + width)
			}
			if y > 0 && !floors[(y-1)*width+x] && regions[i-width] == unlabeled {
				regions[i-width] = id
				todo.PushBack(i - width)
			}
		}
	}

	return regions, nil
}

// NewBoardFromSeparators derives region ids from wall/floor flags and
// builds a board from them. The separator arrays are not retained; wall
// and floor queries on the result come from the derived ids.
func NewBoardFromSeparators(
	width, height int, walls, floors []bool, rowHints, colHints []int,
) (*Board, error) {
	regions, err := RegionsFromSeparators(width, height, walls, floors)
	if err != nil {
		return nil, err
	}
	return NewBoard(width, height, regions, rowHints, colHints)
}
