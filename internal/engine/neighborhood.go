package engine

// Encode1D builds the neighborhood index of cell x in row. The centre sits at
// bit r, the neighbor d cells to the left at bit r-d and the neighbor d cells
// to the right at bit r+d, so radius 1 reads left*1 + center*2 + right*4.
func Encode1D(row []uint8, w, r, x int) int {
	acc := int(row[x]) << r
	for d := 1; d <= r; d++ {
		left := row[((x-d)%w+w)%w]
		right := row[(x+d)%w]
		acc += int(left) << (r - d)
		acc += int(right) << (r + d)
	}
	return acc
}

// Encode2D builds the 9-bit Moore neighborhood index of (x, y) in a row-major
// plane: bit 0 is the top-left cell (y-1), bit 4 the centre and bit 8 the
// bottom-right cell.
func Encode2D(plane []uint8, w, h, x, y int) int {
	xl := (x - 1 + w) % w
	xr := (x + 1) % w
	yt := (y - 1 + h) % h
	yb := (y + 1) % h

	top, mid, bot := yt*w, y*w, yb*w

	acc := int(plane[top+xl])
	acc |= int(plane[top+x]) << 1
	acc |= int(plane[top+xr]) << 2
	acc |= int(plane[mid+xl]) << 3
	acc |= int(plane[mid+x]) << 4
	acc |= int(plane[mid+xr]) << 5
	acc |= int(plane[bot+xl]) << 6
	acc |= int(plane[bot+x]) << 7
	acc |= int(plane[bot+xr]) << 8
	return acc
}
